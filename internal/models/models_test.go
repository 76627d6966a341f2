package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGroupHasMember(t *testing.T) {
	t.Parallel()

	group := Group{
		ID:        1,
		Name:      "Trip to Bali",
		CreatedBy: 10,
		Members: []User{
			{ID: 10, Username: "alice"},
			{ID: 11, Username: "bob"},
		},
	}

	t.Run("member is found", func(t *testing.T) {
		t.Parallel()
		require.True(t, group.HasMember(10))
		require.True(t, group.HasMember(11))
	})

	t.Run("non-member is not found", func(t *testing.T) {
		t.Parallel()
		require.False(t, group.HasMember(99))
	})

	t.Run("member ids preserve order", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []int64{10, 11}, group.MemberIDs())
	})
}

func TestBalanceStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance decimal.Decimal
		want    string
	}{
		{"negative balance owes", decimal.NewFromFloat(-10.00), BalanceStatusOwes},
		{"positive balance is owed", decimal.NewFromFloat(20.00), BalanceStatusOwed},
		{"zero balance is settled", decimal.Zero, BalanceStatusSettled},
		{"one cent owed", decimal.NewFromFloat(0.01), BalanceStatusOwed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, BalanceStatus(tt.balance))
		})
	}
}
