package seed

import (
	"context"
	"fmt"

	"givehaven/internal/utils"
	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

type HomeUpserter interface {
	Upsert(ctx context.Context, home *types.Home) error
}

// One home per interesting verification state, so every banner variant can be
// seen by signing in as its owner.
var fakeHomes = []*types.Home{
	{
		ID:                 "hNk3xF0pQe7RzVw1sLm8YtBa",
		OwnerID:            "44444444-4444-4444-4444-444444444444",
		Name:               "Hope House",
		Address:            utils.StringPtr("14 Mission Road, Kampala"),
		VerificationStatus: string(verification.StatusVerified),
	},
	{
		ID:                 "Lq9ZbT2cVw6XnKe4JhR0uPsD",
		OwnerID:            "55555555-5555-5555-5555-555555555555",
		Name:               "Little Lambs",
		Address:            utils.StringPtr("220 Harbour Street, Mombasa"),
		VerificationStatus: string(verification.StatusPending),
	},
	{
		ID:                 "Wd5YgM8aKs1HtQz7NcE3fVrJ",
		OwnerID:            "66666666-6666-6666-6666-666666666666",
		Name:               "Sunrise Children's Home",
		Address:            utils.StringPtr("3 Acacia Lane, Arusha"),
		VerificationStatus: string(verification.StatusNeedsDocuments),
	},
	{
		ID:                 "Pe2RjX6tBn9CwLs4GkU8mYhZ",
		OwnerID:            "77777777-7777-7777-7777-777777777777",
		Name:               "Grace Shelter",
		Address:            utils.StringPtr("87 Station Road, Kisumu"),
		VerificationStatus: string(verification.StatusApproved),
	},
}

func SeedHomes(ctx context.Context, repo HomeUpserter) ([]*types.Home, error) {
	seeded := make([]*types.Home, 0, len(fakeHomes))
	for _, fake := range fakeHomes {
		home := *fake
		if err := repo.Upsert(ctx, &home); err != nil {
			return nil, fmt.Errorf("failed to upsert fake home %s: %w", home.ID, err)
		}
		seeded = append(seeded, &home)
	}

	return seeded, nil
}
