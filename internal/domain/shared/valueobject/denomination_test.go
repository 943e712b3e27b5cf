package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenominationSetTotal(t *testing.T) {
	t.Run("empty set totals zero", func(t *testing.T) {
		assert.True(t, DenominationSet{}.Total().IsZero())
	})

	t.Run("sums bills and coins exactly", func(t *testing.T) {
		// 3 x $100 + 1 x $0.25 + 2 x $0.01 = 30027 cents
		d := DenominationSet{Bills100: 3, Coins25: 1, Coins1: 2}
		assert.Equal(t, int64(30027), d.Total().Cents())
	})

	t.Run("covers every slot", func(t *testing.T) {
		d := DenominationSet{
			Bills100: 1, Bills50: 1, Bills20: 1, Bills10: 1,
			Bills5: 1, Bills2: 1, Bills1: 1,
			Coins100: 1, Coins25: 1, Coins10: 1, Coins5: 1, Coins1: 1,
		}
		// 100+50+20+10+5+2+1 dollars in bills = 18800 cents,
		// 100+25+10+5+1 cents in coins = 141 cents
		assert.Equal(t, int64(18941), d.Total().Cents())
	})

	t.Run("large counts stay exact", func(t *testing.T) {
		d := DenominationSet{Bills100: 1000, Coins1: 999}
		assert.Equal(t, int64(10000999), d.Total().Cents())
	})
}

func TestDenominationSetValidate(t *testing.T) {
	t.Run("accepts non-negative counts", func(t *testing.T) {
		require.NoError(t, DenominationSet{Bills20: 5, Coins5: 10}.Validate())
		require.NoError(t, DenominationSet{}.Validate())
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		err := DenominationSet{Coins10: -1}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "coins_10")
	})
}

func TestDenominationSetIsEmpty(t *testing.T) {
	assert.True(t, DenominationSet{}.IsEmpty())
	assert.False(t, DenominationSet{Bills1: 1}.IsEmpty())
}
