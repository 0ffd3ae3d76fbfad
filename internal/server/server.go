package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/export/pdf"
	"github.com/rezonia/invoice-studio/internal/format"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
	"github.com/rezonia/invoice-studio/internal/render"
	"github.com/rezonia/invoice-studio/internal/session"
)

// Config holds server configuration
type Config struct {
	Address      string
	Template     string
	OutputDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UploadDelay  time.Duration // zero means the default simulated delay
	Debug        bool
}

// Server exposes the single editing session over HTTP: document reads,
// field edits, item mutations, the HTML preview and the export/upload
// operations.
type Server struct {
	config       *Config
	router       *gin.Engine
	session      *session.Session
	inbox        *export.InboxRasterizer
	orchestrator *export.Orchestrator
}

// NewServer creates an API server with a fresh document from the
// configured template.
func NewServer(config *Config) (*Server, error) {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	doc, err := model.NewDocument(config.Template)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	// The browser client is the rasterization collaborator: it captures
	// the preview itself and posts the PNG with the export request.
	inbox := &export.InboxRasterizer{}
	opts := []export.Option{export.WithOutputDir(config.OutputDir)}
	if config.UploadDelay > 0 {
		opts = append(opts, export.WithUploadDelay(config.UploadDelay))
	}
	orchestrator := export.New(inbox, pdf.NewEncoder(), opts...)

	s := &Server{
		config:       config,
		router:       router,
		session:      session.New(doc),
		inbox:        inbox,
		orchestrator: orchestrator,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/preview", s.handlePreview)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/invoice", s.handleGetInvoice)
		v1.PATCH("/invoice", s.handleSetField)
		v1.PATCH("/invoice/issuer", s.handleSetIssuerField)
		v1.PATCH("/invoice/client", s.handleSetClientField)
		v1.GET("/invoice/totals", s.handleTotals)

		v1.POST("/invoice/items", s.handleAddItem)
		v1.PUT("/invoice/items/:index", s.handleReplaceItem)
		v1.DELETE("/invoice/items/:index", s.handleRemoveItem)

		v1.POST("/export", s.handleExport)
		v1.POST("/upload", s.handleUpload)
		v1.GET("/status", s.handleStatus)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, DocumentResponse{
		Document: s.session.Document(),
		Totals:   s.session.Totals(),
	})
}

func (s *Server) handleSetField(c *gin.Context) {
	var edit FieldEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := s.session.SetField(model.Field(edit.Field), edit.Value); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{
		Document: s.session.Document(),
		Totals:   s.session.Totals(),
	})
}

func (s *Server) handleSetIssuerField(c *gin.Context) {
	s.handlePartyEdit(c, s.session.SetIssuerField)
}

func (s *Server) handleSetClientField(c *gin.Context) {
	s.handlePartyEdit(c, s.session.SetClientField)
}

func (s *Server) handlePartyEdit(c *gin.Context, set func(model.PartyField, string) error) {
	var edit FieldEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := set(model.PartyField(edit.Field), edit.Value); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{
		Document: s.session.Document(),
		Totals:   s.session.Totals(),
	})
}

func (s *Server) handleTotals(c *gin.Context) {
	doc := s.session.Document()
	totals := s.session.Totals()

	c.JSON(http.StatusOK, TotalsResponse{
		Policy:    doc.TaxPolicy,
		Totals:    totals,
		Subtotal:  format.Currency(totals.Subtotal, doc.Currency),
		TaxAmount: format.Currency(totals.TaxAmount, doc.Currency),
		Total:     format.Currency(totals.Total, doc.Currency),
	})
}

func (s *Server) handleAddItem(c *gin.Context) {
	item := s.session.AddItem()
	c.JSON(http.StatusCreated, ItemResponse{
		Item:     item,
		Document: s.session.Document(),
	})
}

func (s *Server) handleReplaceItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item index"})
		return
	}

	var edit ItemEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	id := edit.ID
	if id == "" {
		// Keep the existing identity when the client edits in place.
		doc := s.session.Document()
		if index >= 0 && index < len(doc.Items) {
			id = doc.Items[index].ID
		}
	}

	item := model.LineItem{
		ID:          id,
		Description: edit.Description,
		Quantity:    money.Coerce(edit.Quantity),
		Price:       money.Coerce(edit.Price),
	}

	if err := s.session.ReplaceItem(index, item); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DocumentResponse{
		Document: s.session.Document(),
		Totals:   s.session.Totals(),
	})
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item index"})
		return
	}

	// Removing a non-existent index is a no-op.
	s.session.RemoveItem(index)

	c.JSON(http.StatusOK, DocumentResponse{
		Document: s.session.Document(),
		Totals:   s.session.Totals(),
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	html, err := render.NewPreview(s.session.Document()).HTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "preview rendering failed", Details: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleExport(c *gin.Context) {
	capture, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(capture) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty capture payload"})
		return
	}

	doc := s.session.Document()
	s.inbox.Deliver(capture)

	path, err := s.orchestrator.ExportPDF(c.Request.Context(), render.NewPreview(doc), doc.Number)
	if err != nil {
		if errors.Is(err, export.ErrExportInProgress) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "export failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{File: path})
}

func (s *Server) handleUpload(c *gin.Context) {
	doc := s.session.Document()

	if err := s.orchestrator.UploadToRemote(doc.Number); err != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "uploaded", "invoice": doc.Number})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Exporting: s.orchestrator.Exporting(),
		Uploading: s.orchestrator.Uploading(),
	})
}
