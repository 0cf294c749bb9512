package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Sender is the slice of discordgo.Session the announcer needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts engine milestones to a Discord channel. Delivery is best
// effort: failures are logged and never surface to the publisher.
type Announcer struct {
	sender    Sender
	channelID string

	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

// NewAnnouncer creates an announcer posting to channelID through sender
func NewAnnouncer(sender Sender, channelID string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
		seen:      expirable.NewLRU[string, struct{}](DedupCacheSize, nil, DedupTTL),
	}
}

// AnnouncedTypes lists the events that produce a channel message
func AnnouncedTypes() []event.Type {
	return []event.Type{
		event.LevelUp,
		event.ArchetypeEvolved,
		event.DuelCompleted,
		event.GlobalEventStart,
		event.GlobalEventEnded,
	}
}

// Register subscribes the announcer to the bus
func (a *Announcer) Register(bus event.Bus) {
	for _, t := range AnnouncedTypes() {
		bus.Subscribe(t, a.HandleEvent)
	}
}

// HandleEvent renders and sends one announcement
func (a *Announcer) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	key, embed, err := a.render(evt)
	if err != nil {
		log.Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}
	if embed == nil {
		return nil
	}

	if !a.claim(key) {
		log.Debug(LogMsgDuplicateSkipped, "type", evt.Type, "key", key)
		return nil
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		a.release(key)
		log.Warn(LogMsgAnnouncementFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgAnnouncementSent, "type", evt.Type, "key", key)
	return nil
}

func (a *Announcer) claim(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen.Contains(key) {
		return false
	}
	a.seen.Add(key, struct{}{})
	return true
}

func (a *Announcer) release(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen.Remove(key)
}

// render returns the de-dup key and embed for an event
func (a *Announcer) render(evt event.Event) (string, *discordgo.MessageEmbed, error) {
	switch evt.Type {
	case event.LevelUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s:%s:%d", evt.Type, p.UserID, p.NewLevel), levelUpEmbed(p), nil

	case event.ArchetypeEvolved:
		p, err := event.DecodePayload[event.ArchetypeEvolvedPayloadV1](evt.Payload)
		if err != nil {
			return "", nil, err
		}
		key := fmt.Sprintf("%s:%s:%s:%s:%d", evt.Type, p.UserID, p.From, p.To, evt.Timestamp.UnixNano())
		return key, archetypeEmbed(p), nil

	case event.DuelCompleted:
		p, err := event.DecodePayload[event.DuelCompletedPayloadV1](evt.Payload)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s:%s", evt.Type, p.DuelID), duelEmbed(p), nil

	case event.GlobalEventStart, event.GlobalEventEnded:
		p, err := event.DecodePayload[event.GlobalXPEventPayloadV1](evt.Payload)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s:%s", evt.Type, p.EventID), globalEventEmbed(evt.Type, p), nil
	}
	return "", nil, errors.New("unsupported event type: " + string(evt.Type))
}

func levelUpEmbed(p event.LevelUpPayloadV1) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       TitleLevelUp,
		Description: fmt.Sprintf(FmtLevelUp, p.UserID, p.NewLevel, title(p.NewClass)),
		Color:       ColorLevelUp,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	if p.NewClass != p.OldClass {
		embed.Description += "\n" + fmt.Sprintf(FmtClassChange, title(p.NewClass), title(p.OldClass))
	}
	return embed
}

func archetypeEmbed(p event.ArchetypeEvolvedPayloadV1) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       TitleArchetype,
		Description: fmt.Sprintf(FmtArchetype, p.UserID, title(string(p.From)), title(string(p.To))),
		Color:       ColorArchetype,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterText},
	}
}

func duelEmbed(p event.DuelCompletedPayloadV1) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Color:  ColorDuel,
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	}

	if p.Kind == domain.DuelOutcomeDraw || p.WinnerID == nil {
		embed.Title = TitleDuelDraw
		embed.Description = fmt.Sprintf(FmtDuelDraw, p.ChallengerID, p.OpponentID)
		return embed
	}

	loser := p.OpponentID
	if *p.WinnerID == p.OpponentID {
		loser = p.ChallengerID
	}
	embed.Title = TitleDuelWon
	embed.Description = fmt.Sprintf(FmtDuelWinner, *p.WinnerID, loser)
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name: FieldXPGained,
			Value: fmt.Sprintf(FmtDuelXP, p.ChallengerID, formatXP(p.ChallengerXPGained)) + "\n" +
				fmt.Sprintf(FmtDuelXP, p.OpponentID, formatXP(p.OpponentXPGained)),
		},
	}
	if p.PerfectBalance {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   FieldPerfect,
			Value:  ValuePerfectYes,
			Inline: true,
		})
	}
	return embed
}

func globalEventEmbed(t event.Type, p event.GlobalXPEventPayloadV1) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	if t == event.GlobalEventStart {
		embed.Title = TitleEventStarted
		embed.Color = ColorEvent
		embed.Description = fmt.Sprintf(FmtEventBody, p.Name, p.Factor, p.EndTime.UTC().Format(TimeLayout))
	} else {
		embed.Title = TitleEventEnded
		embed.Color = ColorEventEnd
		embed.Description = fmt.Sprintf(FmtEventEndedBody, p.Name)
	}
	if p.Faction != nil {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Scope", Value: fmt.Sprintf(FmtEventFactionScope, title(*p.Faction)), Inline: true},
		}
	}
	return embed
}

// title is built per call: a Caser keeps state and is not goroutine safe
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func formatXP(xp int64) string {
	if xp > 0 {
		return "+" + strconv.FormatInt(xp, 10)
	}
	return strconv.FormatInt(xp, 10)
}
