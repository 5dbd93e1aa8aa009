package seed

import (
	"context"
	"fmt"
	"math/rand"

	"givehaven/internal/utils"
	"givehaven/internal/verification"
	"givehaven/pkg/types"
)

// DescriptionPrefix marks seeded needs so a reset only touches seed data.
const DescriptionPrefix = "[seed] "

type NeedSeeder interface {
	Upsert(ctx context.Context, need *types.Need) error
	DeleteByDescriptionPrefix(ctx context.Context, prefix string) (int64, error)
}

type fakeNeed struct {
	Title       string
	Description string
	Category    string
}

var fakeNeedTemplates = []fakeNeed{
	{Title: "Winter blankets", Description: "Warm blankets for the dormitory before the cold season.", Category: "bedding"},
	{Title: "School shoes", Description: "Black school shoes in mixed sizes for the new term.", Category: "clothing"},
	{Title: "Exercise books", Description: "Ruled exercise books for primary classes.", Category: "education"},
	{Title: "Rice (25kg bags)", Description: "Staple food for the kitchen for the coming month.", Category: "food"},
	{Title: "Mosquito nets", Description: "Treated nets for the younger children's rooms.", Category: "health"},
	{Title: "Baby formula", Description: "Infant formula for the three newest arrivals.", Category: "food"},
	{Title: "Football and bibs", Description: "Sports kit for the weekend league.", Category: "recreation"},
	{Title: "Toothbrushes and toothpaste", Description: "Hygiene packs for every child.", Category: "hygiene"},
}

type weightedNeedStatus struct {
	Status types.NeedStatus
	Weight int
}

var weightedStatuses = []weightedNeedStatus{
	{Status: types.NeedStatusOpen, Weight: 60},
	{Status: types.NeedStatusPendingPickup, Weight: 20},
	{Status: types.NeedStatusCompleted, Weight: 20},
}

var urgencies = []types.NeedUrgency{types.NeedUrgencyLow, types.NeedUrgencyMedium, types.NeedUrgencyHigh}

// SeedFakeNeeds creates count random needs spread across the homes that are
// allowed to post them.
func SeedFakeNeeds(ctx context.Context, repo NeedSeeder, homes []*types.Home, count int, reset bool, rng *rand.Rand) ([]*types.Need, error) {
	if reset {
		deleted, err := repo.DeleteByDescriptionPrefix(ctx, DescriptionPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to reset seeded needs: %w", err)
		}
		fmt.Printf("Reset seeded needs: %d deleted\n", deleted)
	}

	if count <= 0 {
		fmt.Println("Skipping fake needs seed because count <= 0")
		return nil, nil
	}

	posting := make([]*types.Home, 0, len(homes))
	for _, home := range homes {
		switch verification.Status(home.VerificationStatus) {
		case verification.StatusVerified, verification.StatusApproved:
			posting = append(posting, home)
		}
	}

	if len(posting) == 0 {
		return nil, fmt.Errorf("no verified homes available; seed homes first")
	}

	created := make([]*types.Need, 0, count)
	for i := 0; i < count; i++ {
		tmpl := fakeNeedTemplates[rng.Intn(len(fakeNeedTemplates))]

		need := &types.Need{
			ID:          utils.NanoID(),
			HomeID:      posting[rng.Intn(len(posting))].ID,
			Title:       tmpl.Title,
			Description: utils.StringPtr(DescriptionPrefix + tmpl.Description),
			Category:    tmpl.Category,
			Urgency:     urgencies[rng.Intn(len(urgencies))],
			Quantity:    rng.Intn(49) + 1,
			Status:      pickWeightedStatus(rng),
		}

		if err := repo.Upsert(ctx, need); err != nil {
			return nil, fmt.Errorf("failed to create fake need %d: %w", i+1, err)
		}
		created = append(created, need)
	}

	fmt.Printf("Fake needs seeded: %d created\n", len(created))
	return created, nil
}

func pickWeightedStatus(rng *rand.Rand) types.NeedStatus {
	total := 0
	for _, item := range weightedStatuses {
		total += item.Weight
	}

	roll := rng.Intn(total)
	running := 0
	for _, item := range weightedStatuses {
		running += item.Weight
		if roll < running {
			return item.Status
		}
	}

	return types.NeedStatusOpen
}
