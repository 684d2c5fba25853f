package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	newsfeed "keygate/contexts/card-network/news-feed"
	newserrors "keygate/contexts/card-network/news-feed/domain/errors"
	newshttp "keygate/contexts/card-network/news-feed/transport/http"

	gatewayregistry "keygate/contexts/card-network/gateway-registry"
	gatewayerrors "keygate/contexts/card-network/gateway-registry/domain/errors"
	gatewayhttp "keygate/contexts/card-network/gateway-registry/transport/http"

	accountservice "keygate/contexts/identity-access/account-service"
	accounterrors "keygate/contexts/identity-access/account-service/domain/errors"
	accounthttp "keygate/contexts/identity-access/account-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "keygate/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	accounts accountservice.Module
	gateways gatewayregistry.Module
	news     newsfeed.Module
}

func New(
	accounts accountservice.Module,
	gateways gatewayregistry.Module,
	news newsfeed.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		accounts: accounts,
		gateways: gateways,
		news:     news,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/accounts/{account_id}", s.handleGetAccount)
	s.mux.HandleFunc("PATCH /api/accounts/{account_id}/preferences", s.handleUpdatePreferences)

	s.mux.HandleFunc("GET /api/gateways", s.handleListGateways)
	s.mux.HandleFunc("POST /api/gateways/{gateway_id}/check", s.handleCheckCard)

	s.mux.HandleFunc("GET /api/news", s.handleListNews)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		// An unknown key and a malformed key are deliberately the same
		// answer; login never confirms whether a key exists.
		if errors.Is(err, accounterrors.ErrAccountNotFound) || errors.Is(err, accounterrors.ErrInvalidAccessKey) {
			writeAccountError(w, http.StatusUnauthorized, "invalid_access_key", "access key is not valid")
			return
		}
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseIDPathValue(w, r, "account_id", writeAccountError)
	if !ok {
		return
	}

	resp, err := s.accounts.Handler.GetAccountHandler(r.Context(), accountID)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseIDPathValue(w, r, "account_id", writeAccountError)
	if !ok {
		return
	}

	var req accounthttp.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.UpdatePreferencesHandler(r.Context(), accountID, req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGateways(w http.ResponseWriter, r *http.Request) {
	resp, err := s.gateways.Handler.ListGatewaysHandler(r.Context())
	if err != nil {
		writeGatewayDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckCard(w http.ResponseWriter, r *http.Request) {
	gatewayID, ok := parseIDPathValue(w, r, "gateway_id", writeGatewayError)
	if !ok {
		return
	}

	var req gatewayhttp.CheckCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.gateways.Handler.CheckCardHandler(r.Context(), gatewayID, req)
	if err != nil {
		writeGatewayDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.news.Handler.ListNewsHandler(r.Context())
	if err != nil {
		writeNewsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccountDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidAccessKey):
		writeAccountError(w, http.StatusUnauthorized, "invalid_access_key", "access key is not valid")
	case errors.Is(err, accounterrors.ErrAccountNotFound):
		writeAccountError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, accounterrors.ErrInsufficientCredits):
		writeAccountError(w, http.StatusPaymentRequired, "insufficient_credits", err.Error())
	case errors.Is(err, accounterrors.ErrInvalidLanguage),
		errors.Is(err, accounterrors.ErrInvalidCost):
		writeAccountError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAccountError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGatewayDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gatewayerrors.ErrGatewayNotFound):
		writeGatewayError(w, http.StatusNotFound, "gateway_not_found", err.Error())
	case errors.Is(err, gatewayerrors.ErrGatewayInactive):
		writeGatewayError(w, http.StatusConflict, "gateway_inactive", err.Error())
	case errors.Is(err, gatewayerrors.ErrInvalidGatewayInput),
		errors.Is(err, gatewayerrors.ErrInvalidCardInput):
		writeGatewayError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, gatewayerrors.ErrCheckerUnavailable):
		writeGatewayError(w, http.StatusBadGateway, "checker_unavailable", err.Error())
	case errors.Is(err, accounterrors.ErrInsufficientCredits):
		writeGatewayError(w, http.StatusPaymentRequired, "insufficient_credits", err.Error())
	case errors.Is(err, accounterrors.ErrAccountNotFound):
		writeGatewayError(w, http.StatusNotFound, "account_not_found", err.Error())
	default:
		writeGatewayError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNewsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, newserrors.ErrInvalidNewsInput):
		writeNewsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeNewsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccountError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeGatewayError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, gatewayhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeNewsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, newshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseIDPathValue(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	writeError func(http.ResponseWriter, int, string, string),
) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
