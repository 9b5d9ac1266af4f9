package domain

import "time"

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Token decimals
	DEFAULT_TOKEN_DECIMALS    = 18
	STABLECOIN_TOKEN_DECIMALS = 6

	// Price oracle answers carry 8 decimals
	ORACLE_PRICE_DECIMALS = 8

	// Auctions stay claimable for half a day after they end
	AUCTION_SETTLEMENT_WINDOW = 43200 * time.Second

	// Display fallbacks for addresses missing from the user directory
	UNREGISTERED_USER = "Unregistered user"
	NO_NAME           = "No name"

	// Pagination
	DEFAULT_PAGE_SIZE = 20
	MAX_PAGE_SIZE     = 100

	// Number of items in the "more from this collection" strip on the detail view
	COLLECTION_GALLERY_SIZE = 5

	// Number of recommended collections read from the trade volume ranking
	RECOMMENDED_COLLECTIONS = 15
)
