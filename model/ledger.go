package model

// Balances maps an address to the value it holds after replaying the chain.
// Addresses may go negative: transfers are not checked against funds.
type Balances struct {
	L map[string]float64
}

func NewBalances() Balances {
	return Balances{
		L: make(map[string]float64),
	}
}

// Of returns the balance of address, zero if it never appeared.
func (b Balances) Of(address string) float64 {
	return b.L[address]
}
