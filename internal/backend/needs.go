package backend

import (
	"context"
	"fmt"

	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

func (c *Client) OpenNeeds(ctx context.Context, limit uint64) ([]*types.NeedCard, error) {
	cards, err := c.needs.OpenNeedCards(ctx, limit)
	if err != nil {
		return nil, err
	}

	for _, card := range cards {
		card.HomeLogoURL = c.resolveImage(card.HomeLogoURL)
	}

	return cards, nil
}

func (c *Client) ImpactStats(ctx context.Context) (types.ImpactStats, error) {
	var stats types.ImpactStats
	var err error

	stats.VerifiedHomes, err = c.homes.CountHomes(ctx, string(verification.StatusVerified), string(verification.StatusApproved))
	if err != nil {
		return stats, fmt.Errorf("count verified homes: %w", err)
	}

	stats.OpenNeeds, err = c.needs.CountByStatus(ctx, types.NeedStatusOpen)
	if err != nil {
		return stats, fmt.Errorf("count open needs: %w", err)
	}

	stats.NeedsFulfilled, err = c.needs.CountByStatus(ctx, types.NeedStatusCompleted)
	if err != nil {
		return stats, fmt.Errorf("count fulfilled needs: %w", err)
	}

	stats.Donors, err = c.profiles.CountByRole(ctx, types.RoleDonor)
	if err != nil {
		return stats, fmt.Errorf("count donors: %w", err)
	}

	return stats, nil
}

func (c *Client) AdminOverview(ctx context.Context) (*types.AdminOverview, error) {
	stats, err := c.ImpactStats(ctx)
	if err != nil {
		return nil, err
	}

	inReview, err := c.homes.HomesByVerificationStatus(ctx, verification.ReviewQueue()...)
	if err != nil {
		return nil, fmt.Errorf("load review queue: %w", err)
	}

	total, err := c.homes.CountHomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("count homes: %w", err)
	}

	for _, home := range inReview {
		home.LogoURL = c.resolveImage(home.LogoURL)
	}

	return &types.AdminOverview{
		Stats:         stats,
		HomesInReview: inReview,
		TotalHomes:    total,
	}, nil
}
