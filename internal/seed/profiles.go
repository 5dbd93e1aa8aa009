package seed

import (
	"context"
	"fmt"

	"givehaven/internal/utils"
	"givehaven/pkg/types"
)

type ProfileUpserter interface {
	Upsert(ctx context.Context, profile *types.Profile) error
}

// Profile IDs match the auth.users rows created in the local Supabase project,
// so signing in as one of these emails lands on the seeded profile.
var fakeProfiles = []*types.Profile{
	{ID: "11111111-1111-1111-1111-111111111111", DisplayName: utils.StringPtr("Ava Williams"), Role: types.RoleDonor},
	{ID: "22222222-2222-2222-2222-222222222222", DisplayName: utils.StringPtr("Liam Johnson"), Role: types.RoleDonor},
	{ID: "33333333-3333-3333-3333-333333333333", DisplayName: utils.StringPtr("Mia Davis"), Role: types.RoleDonor},
	{ID: "44444444-4444-4444-4444-444444444444", DisplayName: utils.StringPtr("Hope House"), Role: types.RoleHome},
	{ID: "55555555-5555-5555-5555-555555555555", DisplayName: utils.StringPtr("Little Lambs"), Role: types.RoleHome},
	{ID: "66666666-6666-6666-6666-666666666666", DisplayName: utils.StringPtr("Sunrise Children's Home"), Role: types.RoleHome},
	{ID: "77777777-7777-7777-7777-777777777777", DisplayName: utils.StringPtr("Grace Shelter"), Role: types.RoleHome},
	{ID: "99999999-9999-9999-9999-999999999999", DisplayName: utils.StringPtr("GiveHaven Admin"), Role: types.RoleAdmin, IsSuperAdmin: true},
}

func SeedProfiles(ctx context.Context, repo ProfileUpserter) ([]*types.Profile, error) {
	seeded := make([]*types.Profile, 0, len(fakeProfiles))
	for _, fake := range fakeProfiles {
		profile := *fake
		if err := repo.Upsert(ctx, &profile); err != nil {
			return nil, fmt.Errorf("failed to upsert fake profile %s: %w", profile.ID, err)
		}
		seeded = append(seeded, &profile)
	}

	return seeded, nil
}
