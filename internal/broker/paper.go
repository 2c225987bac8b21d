package broker

// PaperBroker is a long-only paper ledger.
//
// Rules:
// - One position at a time; a second concurrent position is structurally impossible
// - BUY opens a long, SELL closes the entire long (no partial fills)
// - No short selling, no leverage: cost can never exceed available cash
// - Declined orders return false and leave the ledger untouched
type PaperBroker struct {
	initialCash float64
	cash        float64

	posSymbol string
	posSize   float64
	posEntry  float64
}

// DefaultBalance is used when no initial balance is configured.
const DefaultBalance = 1000.0

func New(initialCash float64) *PaperBroker {
	if initialCash <= 0 {
		initialCash = DefaultBalance
	}
	return &PaperBroker{initialCash: initialCash, cash: initialCash}
}

// Cash returns the available balance, excluding any open position.
func (b *PaperBroker) Cash() float64 { return b.cash }

// InitialCash returns the configured starting balance.
func (b *PaperBroker) InitialCash() float64 { return b.initialCash }

// HasPosition reports whether an open position exists for symbol.
func (b *PaperBroker) HasPosition(symbol string) bool {
	return b.posSize > 0 && b.posSymbol == symbol
}

// PositionSize returns the open position size for symbol, 0 when flat.
func (b *PaperBroker) PositionSize(symbol string) float64 {
	if !b.HasPosition(symbol) {
		return 0
	}
	return b.posSize
}

// PositionEntry returns the entry price of the open position, 0 when flat.
func (b *PaperBroker) PositionEntry(symbol string) float64 {
	if !b.HasPosition(symbol) {
		return 0
	}
	return b.posEntry
}

// Equity returns cash plus the mark-to-market value of any open position.
// A non-positive price values the position at zero rather than guessing.
func (b *PaperBroker) Equity(price float64) float64 {
	eq := b.cash
	if b.posSize > 0 && price > 0 {
		eq += b.posSize * price
	}
	return eq
}

// MaxBuySize returns the largest size the current cash can afford at price.
func (b *PaperBroker) MaxBuySize(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return b.cash / price
}

// Buy opens a long position. It is declined, with no state change, when a
// position already exists, when size or price is non-positive, or when the
// cost would exceed available cash.
func (b *PaperBroker) Buy(symbol string, size, price float64) bool {
	if symbol == "" || size <= 0 || price <= 0 {
		return false
	}
	if b.posSize > 0 {
		return false
	}
	cost := size * price
	if cost > b.cash {
		return false
	}
	b.cash -= cost
	b.posSymbol = symbol
	b.posSize = size
	b.posEntry = price
	return true
}

// Sell closes the entire open position for symbol at price. Partial sells
// are not supported. Declined, with no state change, when no position exists
// for symbol or price is non-positive.
func (b *PaperBroker) Sell(symbol string, price float64) bool {
	if price <= 0 {
		return false
	}
	if !b.HasPosition(symbol) {
		return false
	}
	b.cash += b.posSize * price
	b.posSymbol = ""
	b.posSize = 0
	b.posEntry = 0
	return true
}

// Reset restores the starting balance and clears any position.
func (b *PaperBroker) Reset() {
	b.cash = b.initialCash
	b.posSymbol = ""
	b.posSize = 0
	b.posEntry = 0
}
