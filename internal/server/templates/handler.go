// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package templates

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jeremywohl/flatten/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/graph"
	"github.com/nextrip/core/internal/inspect"
	"github.com/nextrip/core/internal/model"
	"github.com/nextrip/core/internal/onboarding"
	"github.com/nextrip/core/internal/parser/form"
	"github.com/nextrip/core/internal/sample"
)

//go:embed *.html
var templateFS embed.FS

// planQuestions is the static planning form. The labels double as the
// question payload sent to the backend.
var planQuestions = []model.Question{
	{Label: "Quelles villes souhaitez-vous visiter ?", Values: []string{"Marrakech", "Fès", "Chefchaouen", "Essaouira", "Merzouga", "Casablanca", "Rabat"}},
	{Label: "Quel est votre budget total ?", Values: []string{"3000-8000 MAD", "8000-15000 MAD", "15000-30000 MAD"}},
	{Label: "Quel rythme de voyage préférez-vous ?", Values: []string{"Relax", "Modéré", "Intense"}},
	{Label: "Quels sont vos centres d'intérêt ?", Values: []string{"Culture", "Gastronomie", "Nature", "Artisanat", "Plage"}},
}

func NewTripHandler(backend *onboarding.Client, trips db.TripStore, voyages db.VoyageStore) *TripHandler {
	return &TripHandler{
		templates: template.Must(template.ParseFS(templateFS, "*.html")),
		logger:    slog.Default().WithGroup("templates"),
		backend:   backend,
		trips:     trips,
		voyages:   voyages,
		layout:    graph.DefaultConfig(),
		sessions:  make(map[uuid.UUID]*wizardSession),
	}
}

type TripHandler struct {
	templates *template.Template
	logger    *slog.Logger
	backend   *onboarding.Client
	trips     db.TripStore
	voyages   db.VoyageStore
	layout    graph.Config

	mu       sync.Mutex
	sessions map[uuid.UUID]*wizardSession
}

// wizardSession keeps the dynamic follow-up state between requests. It
// lives in memory only, a restart drops unfinished wizards.
type wizardSession struct {
	wizard    *onboarding.Wizard
	questions []model.Question
	responses model.Responses
}

type planRequest struct {
	Villes            []string `form:"villes"`
	DateDebut         string   `form:"date_debut"`
	DateFin           string   `form:"date_fin"`
	Budget            string   `form:"budget"`
	Rythme            string   `form:"rythme"`
	Interests         []string `form:"interests"`
	NombrePersonnes   int      `form:"nombre_personnes"`
	AcceptDynamicForm bool     `form:"accept_dynamic_form"`
}

func (h *TripHandler) RenderPlanForm(c *gin.Context) {
	h.renderPlan(c, "")
}

func (h *TripHandler) renderPlan(c *gin.Context, errMsg string) {
	h.render(c, "plan.html", gin.H{
		"Questions": planQuestions,
		"Error":     errMsg,
	})
}

// SubmitPlan validates the static form and starts the onboarding.
func (h *TripHandler) SubmitPlan(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "SubmitPlan")
	defer span.End()

	if err := c.Request.ParseForm(); err != nil {
		span.RecordError(err)
		h.renderPlan(c, errorMessage(model.ErrorReasonValidation))
		return
	}
	var req planRequest
	if err := form.Unmarshal(c.Request.PostForm, &req); err != nil {
		span.RecordError(err)
		h.renderPlan(c, errorMessage(model.ErrorReasonValidation))
		return
	}
	if len(req.Villes) == 0 || req.Budget == "" {
		h.renderPlan(c, errorMessage(model.ErrorReasonValidation))
		return
	}

	responses := model.Responses{
		"villes":    req.Villes,
		"budget":    req.Budget,
		"rythme":    req.Rythme,
		"interests": req.Interests,
	}
	if req.DateDebut != "" && req.DateFin != "" {
		responses["dates"] = map[string]string{"start": req.DateDebut, "end": req.DateFin}
	}
	if req.NombrePersonnes > 0 {
		responses["nombre_personnes"] = req.NombrePersonnes
	}

	res, err := h.backend.Start(ctx, planQuestions, responses, req.AcceptDynamicForm)
	if err != nil {
		span.RecordError(err)
		h.logger.ErrorContext(ctx, "start onboarding", "error", err)
		h.renderPlan(c, errorMessage(model.ErrorReasonBackend))
		return
	}

	switch res.Action {
	case onboarding.ActionShowDynamicForm:
		sessionID := uuid.New()
		wizard := onboarding.NewWizard(*res.Form)
		h.mu.Lock()
		h.sessions[sessionID] = &wizardSession{
			wizard:    wizard,
			questions: planQuestions,
			responses: responses,
		}
		h.mu.Unlock()
		h.renderWizard(c, sessionID, res.Form.Title, wizard.Question(), "")
	case onboarding.ActionDone:
		c.Redirect(http.StatusSeeOther, "/trip/"+res.TripID.String())
	}
}

// SubmitDynamicStep advances, rewinds or submits the follow-up wizard.
func (h *TripHandler) SubmitDynamicStep(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "SubmitDynamicStep")
	defer span.End()

	sessionID, err := uuid.Parse(c.PostForm("session"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/plan")
		return
	}
	h.mu.Lock()
	session, ok := h.sessions[sessionID]
	h.mu.Unlock()
	if !ok {
		c.Redirect(http.StatusSeeOther, "/plan")
		return
	}

	question := session.wizard.Question()
	if values := c.PostFormArray("answer"); len(values) > 0 {
		if question.Type == "multi" {
			session.wizard.SetAnswer(question.Key, values)
		} else if values[0] != "" {
			session.wizard.SetAnswer(question.Key, values[0])
		}
	}

	if c.PostForm("nav") == "previous" {
		if exited := session.wizard.Previous(); exited {
			h.dropSession(sessionID)
			c.Redirect(http.StatusSeeOther, "/plan")
			return
		}
		h.renderWizard(c, sessionID, "", session.wizard.Question(), "")
		return
	}

	switch session.wizard.Next() {
	case onboarding.ProgressBlocked:
		h.renderWizard(c, sessionID, "", session.wizard.Question(), "Cette question est obligatoire.")
	case onboarding.ProgressAdvanced:
		h.renderWizard(c, sessionID, "", session.wizard.Question(), "")
	case onboarding.ProgressSubmit:
		res, err := h.backend.Continue(ctx, session.questions, session.responses, session.wizard.Answers())
		if err != nil {
			span.RecordError(err)
			h.logger.ErrorContext(ctx, "continue onboarding", "error", err)
			h.renderWizard(c, sessionID, "", session.wizard.Question(), "L'envoi a échoué, réessayez.")
			return
		}
		h.dropSession(sessionID)
		c.Redirect(http.StatusSeeOther, "/trip/"+res.TripID.String())
	}
}

func (h *TripHandler) dropSession(id uuid.UUID) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *TripHandler) renderWizard(c *gin.Context, sessionID uuid.UUID, title string, question model.DynamicFormQuestion, errMsg string) {
	h.render(c, "wizard.html", gin.H{
		"Session":  sessionID,
		"Title":    title,
		"Question": question,
		"Error":    errMsg,
	})
}

func (h *TripHandler) RenderTrip(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
		return
	}
	record, err := h.trips.GetTripByID(c.Request.Context(), tripID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
		return
	}
	h.render(c, "trip.html", gin.H{
		"TripID":       tripID.String(),
		"Destinations": record.Profile.Trip.Destinations,
	})
}

// RenderGraph lays out the itinerary of a trip and returns it as JSON. A
// failing backend degrades to the cached voyage, then to the bundled
// example dataset, the view always renders.
func (h *TripHandler) RenderGraph(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "RenderGraph")
	defer span.End()

	tripID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
		return
	}
	voyage := h.fetchVoyage(ctx, tripID)
	c.JSON(http.StatusOK, graph.Layout(voyage, h.layout))
}

// RenderNodeDetail resolves one node of the laid out graph into its detail
// panel view model.
func (h *TripHandler) RenderNodeDetail(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "RenderNodeDetail")
	defer span.End()

	tripID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
		return
	}
	nodeID := c.Param("nodeid")

	voyage := h.fetchVoyage(ctx, tripID)
	laid := graph.Layout(voyage, h.layout)

	inspector := &inspect.Inspector{}
	for _, n := range graph.Enrich(laid.Nodes, inspector.Select) {
		if n.ID == nodeID && n.OnSelect != nil {
			n.OnSelect()
		}
	}

	if node, ok := inspector.Visit(); ok {
		if detail, ok := inspect.DetailFor(node); ok {
			c.JSON(http.StatusOK, detail)
			return
		}
	}
	if node, ok := inspector.Lodging(); ok {
		if detail, ok := inspect.DetailFor(node); ok {
			c.JSON(http.StatusOK, detail)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"code": "NODE_NOT_FOUND", "message": "No selectable node with that id"})
}

// fetchVoyage asks the orchestrateur for a fresh itinerary and caches it.
// On failure the cached voyage is served, and without one the bundled
// example dataset.
func (h *TripHandler) fetchVoyage(ctx context.Context, tripID uuid.UUID) *model.Voyage {
	record, err := h.trips.GetTripByID(ctx, tripID)
	if err == nil {
		voyage, genErr := h.backend.Generate(ctx, record.Profile)
		if genErr == nil {
			if putErr := h.voyages.PutVoyage(ctx, tripID, voyage); putErr != nil {
				h.logger.WarnContext(ctx, "cache voyage", "error", putErr)
			}
			return voyage
		}
		h.logger.WarnContext(ctx, "generate itinerary", "trip_id", tripID, "error", genErr)
	}

	if voyage, err := h.voyages.GetVoyageByTripID(ctx, tripID); err == nil {
		return voyage
	}

	voyage, err := sample.Voyage()
	if err != nil {
		// The bundled dataset is compiled in, failing to decode it is a
		// programming error.
		panic(err)
	}
	return voyage
}

type adminTrip struct {
	TripID    string
	CreatedAt string
	Fields    [][2]string
}

// RenderAdminOverview lists every persisted trip with its flattened
// profile.
func (h *TripHandler) RenderAdminOverview(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "RenderAdminOverview")
	defer span.End()

	ids, err := h.trips.ListTripIDs(ctx)
	if err != nil {
		span.RecordError(err)
		c.Status(http.StatusInternalServerError)
		return
	}

	trips := make([]adminTrip, 0, len(ids))
	for _, id := range ids {
		record, err := h.trips.GetTripByID(ctx, id)
		if err != nil {
			span.RecordError(err)
			continue
		}
		trips = append(trips, adminTrip{
			TripID:    id.String(),
			CreatedAt: record.CreatedAt.Format("2006-01-02 15:04"),
			Fields:    flattenProfileFields(record.Profile),
		})
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].CreatedAt > trips[j].CreatedAt })

	h.render(c, "admin.html", gin.H{"Trips": trips})
}

// flattenProfileFields turns the nested profile into sorted key/value rows
// for the admin table.
func flattenProfileFields(p *model.Profile) [][2]string {
	if p == nil {
		return nil
	}
	j, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	nested := map[string]any{}
	if err := json.Unmarshal(j, &nested); err != nil {
		return nil
	}
	flat, err := flatten.Flatten(nested, "", flatten.DotStyle)
	if err != nil {
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([][2]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, [2]string{k, fmt.Sprint(flat[k])})
	}
	return fields
}

func (h *TripHandler) render(c *gin.Context, name string, data gin.H) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "render template", "template", name, "error", err)
	}
}
