package handlers

import (
	"github.com/modulesio/prsnt/domain"
)

// ServerInfo is one entry of GET /prsnt/servers.json.
type ServerInfo struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	Protocol  string   `json:"protocol"`
	Address   string   `json:"address"`
	Port      int      `json:"port"`
	Users     []string `json:"users"`
	Timestamp int64    `json:"timestamp"` // ms since the Unix epoch
	Online    bool     `json:"online"`
}

// toServersResponse converts domain records to the listing body, keeping their order.
func toServersResponse(records []domain.ServerRecord) []ServerInfo {
	out := make([]ServerInfo, 0, len(records))
	for _, r := range records {
		users := r.Users
		if users == nil {
			users = []string{}
		}
		out = append(out, ServerInfo{
			Name:      r.Name,
			URL:       r.URL,
			Protocol:  string(r.Protocol),
			Address:   r.Address,
			Port:      r.Port,
			Users:     users,
			Timestamp: r.Timestamp.UnixMilli(),
			Online:    r.Online,
		})
	}
	return out
}
