package domain

const (
	// DEFAULT_EDITION_CAP is the maximum edition_total of an asset
	DEFAULT_EDITION_CAP = 21
	// DEFAULT_FLAG_THRESHOLD is the risk score at or above which a recording is flagged
	DEFAULT_FLAG_THRESHOLD = 0.6
	// DEFAULT_FRACTION_CAP is the maximum fraction_count of a fractionalized asset
	DEFAULT_FRACTION_CAP = 10000
	// MIN_FRACTION_COUNT is the minimum fraction_count of a fractionalized asset
	MIN_FRACTION_COUNT = 2
	// DEFAULT_VERIFICATION is the verification status recorded when issuance does not supply one
	DEFAULT_VERIFICATION = "SOVN Clean"

	// MAX_LABEL_LENGTH bounds holder labels and text columns stored as varchar(255)
	MAX_LABEL_LENGTH = 255
	// MAX_FINGERPRINT_LENGTH bounds the fingerprint hash
	MAX_FINGERPRINT_LENGTH = 128
)

// AudioExtensions lists the accepted extensions of an asset's audio reference
var AudioExtensions = []string{".wav", ".mp3", ".flac", ".aiff", ".m4a"}
