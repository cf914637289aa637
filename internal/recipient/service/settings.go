package service

import (
	"context"
	"path"
	"strings"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/models"
)

// OpenSettings pulls the channel's current ringtone and vibration back into
// the store and entity, since the user may have edited the channel outside
// this service, and then runs the consistency repair.
func (c *Coordinator) OpenSettings(ctx context.Context, addr models.Address) (err error) {
	ctx, span := c.startSpan(ctx, "open_settings", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	e, err := c.begin(ctx, addr, false)
	if err != nil {
		return err
	}
	if !e.Get().HasChannel() {
		return nil
	}

	return c.submit(ctx, c.serial, addr, "settings_sync", func(ctx context.Context) error {
		snap := e.Get()
		if !snap.HasChannel() {
			return nil
		}
		ch, err := c.adapterChannel(ctx, addr)
		if err != nil {
			return err
		}
		if ch != nil {
			if err := c.pullChannelSettings(ctx, snap, *ch); err != nil {
				return err
			}
		}
		if _, err := c.EnsureConsistency(ctx); err != nil {
			c.logger.WarnContext(ctx, "consistency check failed",
				"recipient", addr.String(),
				"error", err,
			)
		}
		return nil
	})
}

func (c *Coordinator) pullChannelSettings(ctx context.Context, snap models.Recipient, ch models.Channel) error {
	e, err := c.registry.Get(ctx, snap.Address)
	if err != nil {
		return err
	}
	if ch.Ringtone != snap.MessageRingtone {
		if err := c.store.SetMessageRingtone(ctx, snap.Address, ch.Ringtone); err != nil {
			return err
		}
		c.commit(e, models.FieldRingtone, ch.Ringtone)
	}

	vibrate := models.VibrateDisabled
	if ch.Vibrate {
		vibrate = models.VibrateEnabled
	}
	if vibrate != snap.MessageVibrate {
		if err := c.store.SetMessageVibrate(ctx, snap.Address, vibrate); err != nil {
			return err
		}
		c.commit(e, models.FieldVibrate, vibrate)
	}
	return nil
}

// View is the read model of a recipient's settings screen.
type View struct {
	Address         models.Address `json:"address"`
	Muted           bool           `json:"muted"`
	MuteUntil       int64          `json:"mute_until,omitempty"`
	Ringtone        string         `json:"ringtone"`
	RingtoneSummary string         `json:"ringtone_summary"`
	Vibrate         string         `json:"vibrate"`
	VibrateIndex    int            `json:"vibrate_index"`
	Color           string         `json:"color"`
	CustomChannel   bool           `json:"custom_notifications"`
	ChannelState    string         `json:"channel_state"`
	Visibility      Visibility     `json:"visibility"`
}

// Visibility flags which settings apply to the recipient.
type Visibility struct {
	Mute          bool `json:"mute"`
	Ringtone      bool `json:"ringtone"`
	Vibrate       bool `json:"vibrate"`
	CustomChannel bool `json:"custom_notifications"`
	Color         bool `json:"color"`
	Identity      bool `json:"identity"`
}

// Settings summarizes the current snapshot of addr.
func (c *Coordinator) Settings(ctx context.Context, addr models.Address) (View, error) {
	e, err := c.entityFor(ctx, addr)
	if err != nil {
		return View{}, err
	}
	r := e.Get()

	v := View{
		Address:         r.Address,
		Muted:           r.IsMuted(c.now()),
		Ringtone:        r.MessageRingtone.String(),
		RingtoneSummary: c.ringtoneSummary(ctx, r.MessageRingtone),
		Vibrate:         r.MessageVibrate.String(),
		VibrateIndex:    r.MessageVibrate.ID(),
		Color:           r.Color.String(),
		CustomChannel:   r.CustomNotifications,
		ChannelState:    r.ChannelState.String(),
		Visibility: Visibility{
			Mute:          !r.IsLocal,
			Ringtone:      !r.IsLocal,
			Vibrate:       !r.IsLocal,
			CustomChannel: !r.IsLocal,
			Color:         !r.IsGroup,
			Identity:      !r.IsLocal && !r.IsGroup,
		},
	}
	if v.Muted {
		v.MuteUntil = r.MuteUntil
	}
	return v, nil
}

func (c *Coordinator) ringtoneSummary(ctx context.Context, r models.Ringtone) string {
	switch {
	case r.IsUnset():
		return "default"
	case r.IsSilent():
		return "silent"
	}
	name, err := c.ringtoneName(r.URI)
	if err != nil || name == "" {
		c.logger.DebugContext(ctx, "ringtone title lookup failed", "uri", r.URI, "error", err)
		return "default"
	}
	return name
}

// defaultRingtoneName titles a tone after the last segment of its URI.
func defaultRingtoneName(uri string) (string, error) {
	base := path.Base(strings.TrimRight(uri, "/"))
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if base == "." || base == "/" {
		return "", nil
	}
	return base, nil
}
