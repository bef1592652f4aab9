package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuchengtw/duty-roster-bot/internal/announce"
	"github.com/yuchengtw/duty-roster-bot/internal/config"
	"github.com/yuchengtw/duty-roster-bot/internal/domain"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/rotation"
)

// dateLayouts accepted for the ?date= parameter, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// CronHandler is the announcement trigger endpoint. The platform timer and
// the operator console both call it; every invocation is independent and
// duplicate triggers send duplicate announcements.
type CronHandler struct {
	cfg        *config.Config
	loc        *time.Location
	dispatcher *announce.Dispatcher
	dm         contract.DataManager
	now        func() time.Time
}

func NewCron(cfg *config.Config, loc *time.Location, dispatcher *announce.Dispatcher, dm contract.DataManager) *CronHandler {
	return &CronHandler{
		cfg:        cfg,
		loc:        loc,
		dispatcher: dispatcher,
		dm:         dm,
		now:        time.Now,
	}
}

// Announce handles GET /cron/announce: auth check, config check, duty
// computation, compose and dispatch, JSON response.
func (h *CronHandler) Announce(c *gin.Context) {
	manual := c.Query("manual") == "true"
	if !manual {
		if err := h.authorize(c.GetHeader("Authorization")); err != nil {
			h.fail(c, err)
			return
		}
	}

	groupID := c.Query("groupId")
	if groupID == "" {
		groupID = h.cfg.AnnounceGroupID
	}
	if h.cfg.SlackBotToken == "" || groupID == "" {
		h.fail(c, fmt.Errorf("%w: bot token and target group must be configured", domain.ErrServerConfig))
		return
	}

	evalTime := h.now().In(h.loc)
	if ds := c.Query("date"); ds != "" {
		parsed, err := parseDate(ds, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("invalid date %q", ds)})
			return
		}
		evalTime = parsed
	}

	shift := 0
	if s := c.Query("shift"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("invalid shift %q", s)})
			return
		}
		shift = parsed
	}

	roster := domain.DefaultRoster
	if sl := c.Query("staffList"); sl != "" {
		roster = parseStaffList(sl)
	}

	a, err := h.compose(c, evalTime, roster, shift)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.dispatcher.Send(c.Request.Context(), groupID, a); err != nil {
		log.Printf("Announce dispatch to %s failed: %v", groupID, err)
		h.fail(c, err)
		return
	}

	resp := gin.H{
		"success":   true,
		"message":   a.AltText,
		"timestamp": h.now().In(h.loc).Format(time.RFC3339),
	}
	if a.Duty != "" {
		resp["duty"] = a.Duty
	}
	c.JSON(http.StatusOK, resp)
}

// compose builds the announcement for the requested type.
func (h *CronHandler) compose(c *gin.Context, evalTime time.Time, roster []string, shift int) (announce.Announcement, error) {
	weekStart := rotation.WeekStart(evalTime)

	switch kind := c.DefaultQuery("type", "weekly"); kind {
	case "general":
		content := c.Query("content")
		if content == "" {
			return announce.Announcement{}, fmt.Errorf("general announcement needs content")
		}
		return announce.ComposeGeneral(content), nil

	case "suspend":
		return announce.ComposeSuspended(c.Query("reason"), weekStart), nil

	case "weekly":
		if person := c.Query("person"); person != "" {
			return announce.ComposeWeekly(person, weekStart), nil
		}
		calc := rotation.Calculator{
			Roster:      roster,
			AnchorDate:  domain.AnchorDate(h.loc),
			AnchorIndex: domain.AnchorIndex,
			Offset:      shift,
		}
		dec, err := calc.Decide(evalTime, domain.SkipWeeks, false)
		if err != nil {
			return announce.Announcement{}, err
		}
		if dec.Status != rotation.NotSuspended {
			return announce.ComposeSuspended(c.Query("reason"), dec.WeekStart), nil
		}
		return announce.ComposeWeekly(dec.Duty, dec.WeekStart), nil

	default:
		return announce.Announcement{}, fmt.Errorf("unknown announcement type %q", kind)
	}
}

// Deliveries handles GET /cron/deliveries: the recent delivery log.
// Bearer auth only, no manual bypass.
func (h *CronHandler) Deliveries(c *gin.Context) {
	if err := h.authorize(c.GetHeader("Authorization")); err != nil {
		h.fail(c, err)
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	deliveries, err := h.dm.Delivery().ListRecent(limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deliveries": deliveries})
}

func (h *CronHandler) authorize(header string) error {
	if h.cfg.CronSecret == "" {
		return fmt.Errorf("%w: cron secret is not configured", domain.ErrUnauthorized)
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.CronSecret)) != 1 {
		return fmt.Errorf("%w: bad bearer token", domain.ErrUnauthorized)
	}
	return nil
}

func (h *CronHandler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrUnauthorized) {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func parseStaffList(s string) []string {
	var roster []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}
