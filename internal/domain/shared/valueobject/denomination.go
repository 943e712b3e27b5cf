package valueobject

import "fmt"

// DenominationSet holds the physical count of each US cash denomination
// in a drawer. Counts are non-negative integers; the monetary total is
// derived with pure integer arithmetic over cent values.
type DenominationSet struct {
	Bills100 int `json:"bills_100" gorm:"column:bills_100;not null;default:0"`
	Bills50  int `json:"bills_50" gorm:"column:bills_50;not null;default:0"`
	Bills20  int `json:"bills_20" gorm:"column:bills_20;not null;default:0"`
	Bills10  int `json:"bills_10" gorm:"column:bills_10;not null;default:0"`
	Bills5   int `json:"bills_5" gorm:"column:bills_5;not null;default:0"`
	Bills2   int `json:"bills_2" gorm:"column:bills_2;not null;default:0"`
	Bills1   int `json:"bills_1" gorm:"column:bills_1;not null;default:0"`
	Coins100 int `json:"coins_100" gorm:"column:coins_100;not null;default:0"`
	Coins25  int `json:"coins_25" gorm:"column:coins_25;not null;default:0"`
	Coins10  int `json:"coins_10" gorm:"column:coins_10;not null;default:0"`
	Coins5   int `json:"coins_5" gorm:"column:coins_5;not null;default:0"`
	Coins1   int `json:"coins_1" gorm:"column:coins_1;not null;default:0"`
}

// denominationCents maps each slot to its value in cents, in the order
// the slots are declared.
var denominationCents = []int64{10000, 5000, 2000, 1000, 500, 200, 100, 100, 25, 10, 5, 1}

// counts returns the slot counts in declaration order
func (d DenominationSet) counts() []int {
	return []int{
		d.Bills100, d.Bills50, d.Bills20, d.Bills10, d.Bills5, d.Bills2, d.Bills1,
		d.Coins100, d.Coins25, d.Coins10, d.Coins5, d.Coins1,
	}
}

// Validate returns an error if any denomination count is negative
func (d DenominationSet) Validate() error {
	names := []string{
		"bills_100", "bills_50", "bills_20", "bills_10", "bills_5", "bills_2", "bills_1",
		"coins_100", "coins_25", "coins_10", "coins_5", "coins_1",
	}
	for i, c := range d.counts() {
		if c < 0 {
			return fmt.Errorf("denomination count %s cannot be negative", names[i])
		}
	}
	return nil
}

// Total returns the exact monetary value of all counted denominations
func (d DenominationSet) Total() Money {
	var cents int64
	for i, c := range d.counts() {
		cents += int64(c) * denominationCents[i]
	}
	return NewMoneyFromCents(cents)
}

// IsEmpty returns true if every denomination count is zero
func (d DenominationSet) IsEmpty() bool {
	for _, c := range d.counts() {
		if c != 0 {
			return false
		}
	}
	return true
}
