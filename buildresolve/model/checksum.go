// Package model holds the data types shared by every stage of the build
// resolution engine: checksums coming off the analyzer's queue, the
// catalog-side records returned by KOJI and PNC, and the resolved Build
// records that end up in the Resolver's output map.
package model

// ChecksumType is one of the digest algorithms the analyzer may report.
type ChecksumType string

const (
	ChecksumMD5    ChecksumType = "md5"
	ChecksumSHA1   ChecksumType = "sha1"
	ChecksumSHA256 ChecksumType = "sha256"
)

// emptyDigests holds the digest of the zero-length input for each algorithm
// ChecksumGate uses to recognize and skip placeholder entries.
var emptyDigests = map[ChecksumType]string{
	ChecksumMD5:    "d41d8cd98f00b204e9800998ecf8427e",
	ChecksumSHA1:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	ChecksumSHA256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
}

// IsEmptyDigest reports whether value is the digest of zero bytes for t.
func IsEmptyDigest(t ChecksumType, value string) bool {
	return emptyDigests[t] == value
}

// Checksum is an immutable content digest reported by the analyzer, keyed by
// the filename it was found under.
type Checksum struct {
	Type     ChecksumType
	Value    string
	Filename string
}

// IsSentinel reports whether this Checksum is the queue-termination marker.
// The analyzer signals end-of-stream with a record carrying no value.
func (c Checksum) IsSentinel() bool {
	return c.Value == ""
}
