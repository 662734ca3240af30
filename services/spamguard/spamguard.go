package spamguard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"updatesbot/clients"
	"updatesbot/core"
	"updatesbot/models"
	"updatesbot/services"
)

const (
	// Rule 1: cross-channel image spam.
	rule1ImageThreshold   = 3
	rule1ChannelThreshold = 2
	rule1Window           = 60 * time.Second

	// Rule 2: rapid multi-channel posting.
	rule2ChannelThreshold = 4
	rule2Window           = 30 * time.Second

	// CleanupInterval is how often the composition root ticks Cleanup.
	CleanupInterval = 120 * time.Second
	entryTTL        = 60 * time.Second

	maxReportLinks = 10
)

// SpamGuardService tracks per-user message bursts and reports users that hit
// one of the spam rules. A flagged user is not re-evaluated until the next
// cleanup tick clears the flagged set.
type SpamGuardService struct {
	discordClient   clients.DiscordClient
	modLogChannelID string
	safeRoleIDs     []string
	mode            models.SpamGuardMode
	now             func() time.Time

	mu           sync.Mutex
	userMessages map[string][]models.TrackedMessage
	flaggedUsers map[string]bool
}

// NewSpamGuardService creates a new spam guard.
func NewSpamGuardService(
	discordClient clients.DiscordClient,
	modLogChannelID string,
	safeRoleIDs []string,
	mode models.SpamGuardMode,
) *SpamGuardService {
	return &SpamGuardService{
		discordClient:   discordClient,
		modLogChannelID: modLogChannelID,
		safeRoleIDs:     safeRoleIDs,
		mode:            mode,
		now:             time.Now,
		userMessages:    map[string][]models.TrackedMessage{},
		flaggedUsers:    map[string]bool{},
	}
}

var _ services.SpamGuardService = (*SpamGuardService)(nil)

// SetClock overrides the time source, for tests.
func (s *SpamGuardService) SetClock(now func() time.Time) {
	s.now = now
}

// HandleMessage records an inbound guild message and evaluates the rules.
// Bots and members holding a safe role are never tracked.
func (s *SpamGuardService) HandleMessage(ctx context.Context, msg *models.InboundMessage) {
	if msg.GuildID == "" || msg.IsBot {
		return
	}
	if s.hasSafeRole(msg.MemberRoleIDs) {
		return
	}

	s.mu.Lock()
	entry := models.TrackedMessage{
		ChannelID:  msg.ChannelID,
		MessageID:  msg.MessageID,
		GuildID:    msg.GuildID,
		Timestamp:  s.now().UnixMilli(),
		ImageCount: msg.ImageCount,
	}
	s.userMessages[msg.AuthorID] = append(s.userMessages[msg.AuthorID], entry)
	detected := s.checkRulesLocked(msg.AuthorID, msg.AuthorTag)
	s.mu.Unlock()

	if detected != nil {
		s.handleDetection(detected)
	}
}

// detection pairs a report with the tracked entries that triggered it; the
// entries are needed for act-mode deletion after the map slot is cleared.
type detection struct {
	report  *models.SpamReport
	entries []models.TrackedMessage
}

func (s *SpamGuardService) hasSafeRole(roleIDs []string) bool {
	if len(s.safeRoleIDs) == 0 {
		return false
	}
	for _, roleID := range roleIDs {
		for _, safe := range s.safeRoleIDs {
			if roleID == safe {
				return true
			}
		}
	}
	return false
}

// checkRulesLocked evaluates both rules in order. On a hit it flags the user,
// builds the report and clears the user's tracked list. Callers must hold mu.
func (s *SpamGuardService) checkRulesLocked(userID, userTag string) *detection {
	if s.flaggedUsers[userID] {
		return nil
	}
	entries := s.userMessages[userID]
	if len(entries) == 0 {
		return nil
	}
	now := s.now().UnixMilli()

	rule1Channels := map[string]bool{}
	totalImages := 0
	for _, e := range entries {
		if now-e.Timestamp < rule1Window.Milliseconds() && e.ImageCount > 0 {
			rule1Channels[e.ChannelID] = true
			totalImages += e.ImageCount
		}
	}
	if totalImages >= rule1ImageThreshold && len(rule1Channels) >= rule1ChannelThreshold {
		return s.flagLocked(userID, userTag, "Cross-channel image spam",
			fmt.Sprintf("%d images across %d channels in %ds", totalImages, len(rule1Channels), int(rule1Window.Seconds())),
			entries)
	}

	rule2Channels := map[string]bool{}
	for _, e := range entries {
		if now-e.Timestamp < rule2Window.Milliseconds() {
			rule2Channels[e.ChannelID] = true
		}
	}
	if len(rule2Channels) >= rule2ChannelThreshold {
		return s.flagLocked(userID, userTag, "Rapid multi-channel posting",
			fmt.Sprintf("%d channels in %ds", len(rule2Channels), int(rule2Window.Seconds())),
			entries)
	}

	return nil
}

func (s *SpamGuardService) flagLocked(userID, userTag, rule, detail string, entries []models.TrackedMessage) *detection {
	s.flaggedUsers[userID] = true

	links := make([]string, 0, len(entries))
	for _, e := range entries {
		links = append(links, fmt.Sprintf("https://discord.com/channels/%s/%s/%s", e.GuildID, e.ChannelID, e.MessageID))
	}
	if len(links) > maxReportLinks {
		links = links[:maxReportLinks]
	}
	report := &models.SpamReport{
		ID:           core.NewID("spam"),
		UserID:       userID,
		UserTag:      userTag,
		Rule:         rule,
		Detail:       detail,
		MessageLinks: links,
		Mode:         s.mode,
	}

	kept := make([]models.TrackedMessage, len(entries))
	copy(kept, entries)
	delete(s.userMessages, userID)
	return &detection{report: report, entries: kept}
}

// handleDetection posts the mod-log report and, in act mode, best-effort
// deletes the tracked messages and bans the user.
func (s *SpamGuardService) handleDetection(detected *detection) {
	report := detected.report
	log.Printf("🚨 Spam detected: %s (%s) - %s - %s", report.UserTag, report.UserID, report.Rule, report.Detail)

	if s.modLogChannelID != "" {
		if err := s.discordClient.SendSpamReport(s.modLogChannelID, report); err != nil {
			log.Printf("❌ Failed to send spam report %s: %v", report.ID, err)
		}
	}

	if report.Mode != models.SpamGuardModeAct {
		return
	}
	guildID := ""
	for _, e := range detected.entries {
		if guildID == "" {
			guildID = e.GuildID
		}
		if err := s.discordClient.DeleteMessage(e.ChannelID, e.MessageID); err != nil {
			log.Printf("⚠️ Failed to delete message %s in channel %s: %v", e.MessageID, e.ChannelID, err)
		}
	}
	if guildID != "" {
		reason := fmt.Sprintf("[SpamGuard] %s", report.Rule)
		if err := s.discordClient.BanUser(guildID, report.UserID, reason); err != nil {
			log.Printf("⚠️ Failed to ban user %s: %v", report.UserID, err)
		}
	}
}

// Cleanup evicts tracked entries older than the TTL, drops users left with no
// entries and clears the whole flagged set so repeat offenders can be
// re-detected. Flags are intentionally not expired per user.
func (s *SpamGuardService) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	for userID, entries := range s.userMessages {
		fresh := entries[:0:0]
		for _, e := range entries {
			if now-e.Timestamp < entryTTL.Milliseconds() {
				fresh = append(fresh, e)
			}
		}
		if len(fresh) == 0 {
			delete(s.userMessages, userID)
		} else {
			s.userMessages[userID] = fresh
		}
	}
	for userID := range s.flaggedUsers {
		delete(s.flaggedUsers, userID)
	}
}
