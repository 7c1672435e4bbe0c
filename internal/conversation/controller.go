// Package conversation owns the chat transcript and its submission flow.
//
// The Controller is a pure state machine in the same style as the wizard:
// Submit stages exactly one backend call described by a Call value, the
// caller performs it, and Resolve applies the outcome. Calls carry the
// epoch of the session they belong to, so a response arriving after a
// reset is discarded instead of resurrecting cleared state.
package conversation

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/gateway"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/wizard"
)

// ErrorPreamble opens every error transcript entry; the classified failure
// detail is appended after it.
const ErrorPreamble = "죄송합니다. 오류가 발생했습니다. 잠시 후 다시 시도해주세요.\n\n오류 상세: "

// Call describes one staged hybrid-search request.
type Call struct {
	Request    models.SearchRequest
	Epoch      int
	FromWizard bool
}

// Controller manages one chat session: the append-only transcript, the
// last-coverage context token, the pending input, and the loading/lock
// gates. Not safe for concurrent use; it is driven from a single event
// loop.
type Controller struct {
	messages     []models.Message
	lastCoverage string
	pendingInput string
	template     *catalog.Template
	loading      bool
	locked       bool
	epoch        int
}

// New creates an empty conversation.
func New() *Controller {
	return &Controller{}
}

// UseTemplate seeds the pending input with a template's example question
// and remembers the template so its id and search hints ride along on the
// next submit.
func (c *Controller) UseTemplate(t catalog.Template) {
	tmpl := t
	c.template = &tmpl
	c.pendingInput = t.Example
	slog.Debug("conversation template selected", "template_id", t.ID)
}

// SetInput replaces the pending input text.
func (c *Controller) SetInput(text string) {
	c.pendingInput = text
}

// Input returns the pending input text.
func (c *Controller) Input() string { return c.pendingInput }

// Submit stages a free-text search. Empty or whitespace-only input is
// rejected, as is any submit while a request is in flight or after a
// wizard-originated query locked the input.
func (c *Controller) Submit(text string) (*Call, error) {
	if c.loading || c.locked {
		return nil, models.ErrBusy
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.ErrEmptyQuery
	}

	c.append(models.NewUserMessage(trimmed))
	c.pendingInput = ""
	c.loading = true

	req := models.SearchRequest{
		Query:        trimmed,
		LastCoverage: c.lastCoverage,
	}
	// The template context applies only to the submit it seeded.
	if c.template != nil {
		req.TemplateID = c.template.ID
		req.SearchParams = c.template.SearchParams
		c.template = nil
	}
	slog.Info("conversation submit", "template_id", req.TemplateID, "has_last_coverage", req.LastCoverage != "")
	return &Call{Request: req, Epoch: c.epoch}, nil
}

// SubmitWizard stages the query emitted by the query-builder wizard. After
// the call settles the free-text input stays locked until Reset.
func (c *Controller) SubmitWizard(q wizard.Query) (*Call, error) {
	if c.loading {
		return nil, models.ErrBusy
	}

	c.append(models.NewUserMessage(q.Text))
	c.loading = true

	req := models.SearchRequest{
		Query:        q.Text,
		LastCoverage: c.lastCoverage,
		TemplateID:   q.TemplateID,
	}
	slog.Info("conversation wizard submit", "template_id", q.TemplateID)
	return &Call{Request: req, Epoch: c.epoch, FromWizard: true}, nil
}

// Resolve applies the outcome of a staged call. Calls from a previous
// epoch (a reset happened while the request was in flight) are discarded.
func (c *Controller) Resolve(call *Call, resp *models.SearchResponse, err error) {
	if call == nil || call.Epoch != c.epoch {
		slog.Debug("conversation discarding stale response", "from_wizard", call != nil && call.FromWizard)
		return
	}
	c.loading = false

	if err != nil {
		slog.Error("conversation search failed", "error", err)
		msg := models.NewAssistantMessage(ErrorPreamble + gateway.UserMessage(err))
		msg.IsError = true
		c.append(msg)
	} else {
		msg := models.NewAssistantMessage(resp.Answer)
		msg.ComparisonTable = resp.ComparisonTable
		msg.Sources = resp.Sources
		c.append(msg)
		if resp.Coverage != "" {
			c.lastCoverage = resp.Coverage
		}
	}

	// A wizard-originated query locks free-text input either way; only the
	// explicit return-to-start reset unlocks it.
	if call.FromWizard {
		c.locked = true
	}
}

// Reset clears the transcript, the last-coverage token, the pending input,
// the template context, and the lock, unconditionally. The finished
// session is returned for archiving, or nil when nothing was said. An
// in-flight request is orphaned: its epoch no longer matches.
func (c *Controller) Reset() *models.ChatSession {
	var session *models.ChatSession
	if len(c.messages) > 0 {
		session = &models.ChatSession{
			ID:        uuid.NewString(),
			StartedAt: c.messages[0].Timestamp,
			EndedAt:   time.Now(),
			Messages:  c.messages,
		}
	}
	c.messages = nil
	c.lastCoverage = ""
	c.pendingInput = ""
	c.template = nil
	c.loading = false
	c.locked = false
	c.epoch++
	slog.Info("conversation reset", "archived", session != nil)
	return session
}

func (c *Controller) append(m models.Message) {
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastCoverage returns the stored context token, empty when none.
func (c *Controller) LastCoverage() string { return c.lastCoverage }

// Loading reports whether a search is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Locked reports whether free-text input is disabled pending a reset.
func (c *Controller) Locked() bool { return c.locked }

// Template returns the active template context, or nil.
func (c *Controller) Template() *catalog.Template { return c.template }
