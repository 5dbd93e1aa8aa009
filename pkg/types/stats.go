package types

type ImpactStats struct {
	VerifiedHomes  int
	OpenNeeds      int
	NeedsFulfilled int
	Donors         int
}

type AdminOverview struct {
	Stats         ImpactStats
	HomesInReview []*Home
	TotalHomes    int
}
