package ethereum

// Exposes unexported ABIs to the external ethereum_test package.
var (
	ERC721ABI      = erc721ABI
	ERC1155ABI     = erc1155ABI
	CollectionABI  = collectionABI
	ProxyAdminABI  = proxyAdminABI
	MarketplaceABI = marketplaceABI
)
