package entities

// GuildSetting holds per-guild configuration: the channel event messages
// are posted to and searched in.
type GuildSetting struct {
	GuildID          string
	ListeningChannel string
}
