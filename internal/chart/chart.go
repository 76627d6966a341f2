// Package chart renders group balance summaries as PNG images.
package chart

import (
	"fmt"

	"github.com/go-analyze/charts"

	"gitlab.com/aungkhant/divvy/internal/models"
)

// RenderGroupBalances creates a horizontal bar chart of every member's net
// balance in the group. Returns PNG image as bytes.
func RenderGroupBalances(group *models.Group, balances []models.MemberBalance) ([]byte, error) {
	if len(balances) == 0 {
		return nil, fmt.Errorf("no balances to chart")
	}

	values := make([]float64, len(balances))
	labels := make([]string, len(balances))
	for i, bal := range balances {
		values[i] = bal.Balance.InexactFloat64()
		labels[i] = bal.User.Username
	}

	p, err := charts.HorizontalBarRender(
		[][]float64{values},
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Balances - %s", group.Name),
		}),
		charts.YAxisLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
