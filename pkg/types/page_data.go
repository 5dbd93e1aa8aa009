package types

type NavbarData struct {
	IsAuthenticated bool
	UserID          string
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

// ConsentData drives the cookie consent banner included in every layout.
type ConsentData struct {
	Show             bool
	AppearDelayMs    int64
	ReturnTo         string
	AnalyticsAllowed bool
}

type ConsentDataSetter interface {
	SetConsentData(data ConsentData)
}

type BasePageData struct {
	Title   string
	Notice  string
	Error   string
	Navbar  NavbarData
	Consent ConsentData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

func (d *BasePageData) SetConsentData(data ConsentData) {
	d.Consent = data
}
