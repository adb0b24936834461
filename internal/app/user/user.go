/*
Package user contains the identity and peer records the VPN manager API hands out.

UserData is what the access token's claims carry about the signed-in account;
UserWithConnection is one entry of the peer roster, including its WireGuard address
and public key.
*/
package user

import "fmt"

// DefaultAvatar is shown for accounts without a custom avatar.
const DefaultAvatar = "https://cdn.discordapp.com/embed/avatars/0.png"

// UserData represents a Discord-backed account as seen by the VPN manager.
type UserData struct {
	// DiscordID is the Discord user snowflake and the account's unique key.
	DiscordID string `json:"discord_id"`

	// Username is the Discord username.
	Username string `json:"username"`

	// GlobalName is the Discord global display name; may be empty.
	GlobalName string `json:"global_name"`

	// Avatar is the Discord avatar hash; may be empty.
	Avatar string `json:"avatar"`

	// DisplayName is the name the server resolved for display.
	DisplayName string `json:"display_name"`

	// DisplayAvatar is the avatar URL the server resolved for display.
	DisplayAvatar string `json:"display_avatar"`
}

// Name returns the best available display name.
func (u UserData) Name() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.GlobalName != "":
		return u.GlobalName
	default:
		return u.Username
	}
}

// AvatarURL returns the display avatar, deriving it from the avatar hash when the
// server did not fill it in.
func (u UserData) AvatarURL() string {
	if u.DisplayAvatar != "" {
		return u.DisplayAvatar
	}
	if u.Avatar != "" {
		return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.DiscordID, u.Avatar)
	}
	return DefaultAvatar
}

// Connection is the public half of a WireGuard peer assignment.
type Connection struct {
	PublicKey string `json:"public_key"`
	IPAddress string `json:"ip_address"`
}

// UserWithConnection is one peer of the roster.
type UserWithConnection struct {
	UserData
	Connection Connection `json:"connection"`
}

// FindByDiscordID returns the roster entry of the given account, or nil.
func FindByDiscordID(peers []UserWithConnection, discordID string) *UserWithConnection {
	for i := range peers {
		if peers[i].DiscordID == discordID {
			return &peers[i]
		}
	}
	return nil
}
