package constants

const (
	MAX_PAGE_SIZE             = 100
	MAX_DISTRIBUTION_HOLDERS  = 100
	DEFAULT_ASSETS_LIMIT      = 20
	DEFAULT_SETTLEMENTS_LIMIT = 20
	DEFAULT_CHANGES_LIMIT     = 50
)
