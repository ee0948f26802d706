package model

// NVRA is the name-version-release-architecture identity tuple parsed from
// an RPM filename (§4.6 step h, GLOSSARY "NVRA").
type NVRA struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// String renders the canonical "name-version-release.arch" form.
func (n NVRA) String() string {
	return n.Name + "-" + n.Version + "-" + n.Release + "." + n.Arch
}

// PncBuildRecord is the PNC build-record payload fetched as part of
// findBuildsPnc's follow-up batch (§4.6).
type PncBuildRecord struct {
	ID                int
	BuildConfigID     int
	ProductVersionID  int
	Status            string
	ScmRevision       string
}

// PncBuildConfiguration is the PNC build-configuration payload.
type PncBuildConfiguration struct {
	ID      int
	Name    string
	Project string
}

// PncProductVersion is the PNC product-version payload.
type PncProductVersion struct {
	ID      int
	Version string
	Product string
}

// PncPushResult is a PNC build-record's push-to-Brew result, if any.
type PncPushResult struct {
	ID      int
	BuildID int
	Status  string
	BrewTag string
}
