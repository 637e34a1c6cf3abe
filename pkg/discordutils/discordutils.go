package discordutils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/zekurio/herald/internal/util/static"
)

// GetInviteLink returns the invite link for the bot session.
func GetInviteLink(s *discordgo.Session) string {
	return fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%s&scope=%s&permissions=%d",
		s.State.User.ID, static.OAuthScopes, static.InvitePermission)
}

// GetMember returns a guild member, preferring the state cache
// over the API.
func GetMember(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	m, err := s.State.Member(guildID, userID)
	if err == nil {
		return m, nil
	}
	return s.GuildMember(guildID, userID)
}

// GetChannel returns a channel, preferring the state cache
// over the API.
func GetChannel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	c, err := s.State.Channel(channelID)
	if err == nil {
		return c, nil
	}
	return s.Channel(channelID)
}

// GetVoiceMembers returns the members currently connected to the
// given voice channel.
func GetVoiceMembers(s *discordgo.Session, guildID, channelID string) (members []*discordgo.Member, err error) {
	g, err := s.State.Guild(guildID)
	if err != nil {
		return nil, err
	}

	for _, vs := range g.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		m, err := GetMember(s, guildID, vs.UserID)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, nil
}

// HumanVoiceCount returns the number of non-bot members connected
// to the given voice channel.
func HumanVoiceCount(s *discordgo.Session, guildID, channelID string) (int, error) {
	members, err := GetVoiceMembers(s, guildID, channelID)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, m := range members {
		if m.User != nil && !m.User.Bot {
			n++
		}
	}

	return n, nil
}

// SendMessageDM sends a plain text direct message to a user.
func SendMessageDM(s *discordgo.Session, userID, message string) (*discordgo.Message, error) {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return nil, err
	}
	return s.ChannelMessageSend(ch.ID, message)
}
