package readmodel

import (
	"sync"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/uri"
)

// UserDisplay is how an address is shown next to a token or a collection
type UserDisplay struct {
	Address    string `json:"address"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Intro      string `json:"intro"`
	Registered bool   `json:"registered"`
}

// UserDirectory holds the registered users keyed by checksummed address.
// Avatars are stored already transformed through the content gateway.
type UserDirectory struct {
	mu      sync.RWMutex
	gateway *uri.Gateway
	users   map[string]domain.UserProfile
}

// NewUserDirectory creates a directory from the backend user list
func NewUserDirectory(gateway *uri.Gateway, users []domain.UserProfile) *UserDirectory {
	d := &UserDirectory{gateway: gateway}
	d.Replace(users)
	return d
}

// Replace swaps the whole directory content
func (d *UserDirectory) Replace(users []domain.UserProfile) {
	byAddress := make(map[string]domain.UserProfile, len(users))
	for _, u := range users {
		u = d.prepare(u)
		byAddress[u.Address] = u
	}

	d.mu.Lock()
	d.users = byAddress
	d.mu.Unlock()
}

// Upsert adds or refreshes one user
func (d *UserDirectory) Upsert(user domain.UserProfile) {
	user = d.prepare(user)

	d.mu.Lock()
	d.users[user.Address] = user
	d.mu.Unlock()
}

func (d *UserDirectory) prepare(u domain.UserProfile) domain.UserProfile {
	u.Address = domain.NormalizeAddress(u.Address)
	if d.gateway != nil && uri.IsIPFS(u.AvatarImage) {
		u.AvatarImage = d.gateway.Image(u.AvatarImage, uri.SizeAvatar)
	}
	return u
}

// Lookup returns the registered user behind an address
func (d *UserDirectory) Lookup(address string) (domain.UserProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[domain.NormalizeAddress(address)]
	return u, ok
}

// Display resolves the name, avatar and intro shown for an address.
// Unknown addresses are shown truncated and marked unregistered.
func (d *UserDirectory) Display(address string) UserDisplay {
	if address == "" || domain.IsZeroAddress(address) {
		return UserDisplay{Address: domain.ETHEREUM_ZERO_ADDRESS, Name: "0x0", Intro: domain.UNREGISTERED_USER}
	}

	u, ok := d.Lookup(address)
	if !ok {
		return UserDisplay{
			Address: domain.NormalizeAddress(address),
			Name:    domain.TruncateAddress(address),
			Intro:   domain.UNREGISTERED_USER,
		}
	}

	name := u.UserName
	if name == "" {
		name = domain.NO_NAME
	}
	return UserDisplay{
		Address:    u.Address,
		Name:       name,
		Image:      u.AvatarImage,
		Intro:      u.Introduction,
		Registered: true,
	}
}

// Len returns the number of registered users
func (d *UserDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}
