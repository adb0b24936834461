/*
Package dashboard assembles the home view: the signed-in account, its own connection,
the config download and one card per peer with its live status.
*/
package dashboard

import (
	"time"

	"wgdash/internal/app/api"
	"wgdash/internal/app/status"
	"wgdash/internal/app/user"
	"wgdash/internal/pkg/timefmt"
)

// Loading is the last-seen text shown until the first status snapshot arrives.
const Loading = "Loading..."

// ConfigFileName is the file name offered for the config download.
const ConfigFileName = "connection.conf"

// PeerView is one peer card.
type PeerView struct {
	DiscordID string          `json:"discord_id"`
	Name      string          `json:"display_name"`
	Avatar    string          `json:"display_avatar"`
	IPAddress string          `json:"ip_address"`
	PublicKey string          `json:"public_key"`
	Liveness  status.Liveness `json:"liveness"`
	LastSeen  string          `json:"last_seen"`
	Self      bool            `json:"self"`
}

// View is everything the home page renders.
type View struct {
	User user.UserData `json:"user"`

	// Self is the signed-in account's own roster entry, nil when it has no connection.
	Self *PeerView `json:"self,omitempty"`

	Peers []PeerView `json:"peers"`

	// ConfigBase64 is the WireGuard config encoded for a data: URL.
	ConfigBase64 string `json:"config_base64"`
	InstallLink  string `json:"install_link"`
	StatusLoaded bool   `json:"status_loaded"`
}

// ConfigDataURL returns the data: URL for the config download link.
func (v View) ConfigDataURL() string {
	return "data:text/plain;base64," + v.ConfigBase64
}

// Build derives the view from the fetched roster and the latest status snapshot, which
// is nil while none has arrived. There is exactly one card per roster entry, in roster
// order.
func Build(me user.UserData, peers []user.UserWithConnection, snapshot status.StatusMap, config, installLink string, now time.Time) View {
	v := View{
		User:         me,
		Peers:        make([]PeerView, 0, len(peers)),
		ConfigBase64: api.EncodeConfig(config),
		InstallLink:  installLink,
		StatusLoaded: snapshot != nil,
	}

	for _, p := range peers {
		pv := PeerView{
			DiscordID: p.DiscordID,
			Name:      p.Name(),
			Avatar:    p.AvatarURL(),
			IPAddress: p.Connection.IPAddress,
			PublicKey: p.Connection.PublicKey,
			Liveness:  status.Classify(snapshot, p.Connection.PublicKey, now),
			LastSeen:  LastSeen(snapshot, p.Connection.PublicKey, now),
			Self:      p.DiscordID == me.DiscordID,
		}
		v.Peers = append(v.Peers, pv)
	}

	for i := range v.Peers {
		if v.Peers[i].Self {
			self := v.Peers[i]
			v.Self = &self
			break
		}
	}

	return v
}

// LastSeen returns the last-seen text of the peer with publicKey.
func LastSeen(snapshot status.StatusMap, publicKey string, now time.Time) string {
	if snapshot == nil {
		return Loading
	}
	return timefmt.Relative(snapshot[publicKey], now)
}

// PeerStatus is the live part of a peer card.
type PeerStatus struct {
	Liveness status.Liveness `json:"liveness"`
	LastSeen string          `json:"last_seen"`
}

// Statuses derives the live part of every card present in snapshot, keyed by public key.
// Peers missing from the map render as unknown and never seen.
func Statuses(snapshot status.StatusMap, now time.Time) map[string]PeerStatus {
	out := make(map[string]PeerStatus, len(snapshot))
	for key := range snapshot {
		out[key] = PeerStatus{
			Liveness: status.Classify(snapshot, key, now),
			LastSeen: LastSeen(snapshot, key, now),
		}
	}
	return out
}

// Rebuild refreshes the live part of every card of v from snapshot without fetching
// the roster again.
func Rebuild(v *View, snapshot status.StatusMap, now time.Time) View {
	out := *v
	out.StatusLoaded = snapshot != nil
	out.Peers = make([]PeerView, len(v.Peers))

	for i, p := range v.Peers {
		p.Liveness = status.Classify(snapshot, p.PublicKey, now)
		p.LastSeen = LastSeen(snapshot, p.PublicKey, now)
		out.Peers[i] = p

		if p.Self {
			self := p
			out.Self = &self
		}
	}

	return out
}
