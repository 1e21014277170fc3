package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"lifeplan/internal/core"
	"lifeplan/internal/export"
	"lifeplan/internal/plan"
	"lifeplan/internal/services"
	"lifeplan/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

type itemRef struct {
	Section core.Section `json:"section"`
	Book    core.Book    `json:"book"`
	ID      int          `json:"id"`
}

type addItemRequest struct {
	Section  core.Section `json:"section"`
	Book     core.Book    `json:"book"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Category string       `json:"category"`
}

type patchItemRequest struct {
	itemRef
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

type setAmountRequest struct {
	itemRef
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type planResponse struct {
	Household   core.Household  `json:"household"`
	Parameters  core.Parameters `json:"parameters"`
	Income      core.ItemSet    `json:"income"`
	Expenses    core.ItemSet    `json:"expenses"`
	Assets      core.ItemSet    `json:"assets"`
	Liabilities core.ItemSet    `json:"liabilities"`
}

type savePlanRequest struct {
	Name string `json:"name"`
}

type loadPlanRequest struct {
	ID string `json:"id"`
}

type planRecordResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	in := s.plans.Inputs()
	writeJSON(w, http.StatusOK, planResponse{
		Household:   in.Household,
		Parameters:  in.Parameters,
		Income:      in.Income,
		Expenses:    in.Expenses,
		Assets:      in.Assets,
		Liabilities: in.Liabilities,
	})
}

func (s *Server) handleHousehold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	var h core.Household
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.plans.SetHousehold(r.Context(), h); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.plans.Household())
}

func (s *Server) handleParameters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	var p core.Parameters
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.plans.SetParameters(r.Context(), p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.plans.Parameters())
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		item, err := s.plans.AddItem(r.Context(), req.Section, req.Book, req.Name, req.Type, req.Category)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	case http.MethodDelete:
		var req itemRef
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if err := s.plans.RemoveItem(r.Context(), req.Section, req.Book, req.ID); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	case http.MethodPatch:
		var req patchItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.Name != nil {
			if err := s.plans.RenameItem(r.Context(), req.Section, req.Book, req.ID, *req.Name); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		if req.Category != nil {
			if err := s.plans.RecategorizeItem(r.Context(), req.Section, req.Book, req.ID, *req.Category); err != nil {
				writeStoreError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	default:
		methodNotAllowed(w, "POST, DELETE, PATCH")
	}
}

func (s *Server) handleAmount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	var req setAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.plans.SetAmount(r.Context(), req.Section, req.Book, req.ID, req.Year, req.Value); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.plans.CashFlow())
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	book := core.Book(r.URL.Query().Get("book"))
	if book == "" {
		book = core.BookPersonal
	}
	series, err := s.plans.NetAssets(book)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.plans.History())
	case http.MethodDelete:
		s.plans.ClearHistory()
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		methodNotAllowed(w, "GET, DELETE")
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	data := export.CashFlowCSV(s.plans.Inputs(), s.plans.CashFlow())
	filename := fmt.Sprintf("cashflow_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.plans.ListPlans(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]planRecordResponse, 0, len(records))
		for _, rec := range records {
			out = append(out, planRecordResponse{
				ID:        rec.ID,
				Name:      rec.Name,
				CreatedAt: rec.CreatedAt,
				UpdatedAt: rec.UpdatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req savePlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusUnprocessableEntity, "plan name must not be empty")
			return
		}
		id, err := s.plans.SavePlan(r.Context(), req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleLoadPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req loadPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.plans.LoadPlan(r.Context(), req.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "id": req.ID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeStoreError maps store errors onto HTTP statuses: unknown ids are
// 404, unknown sections or books 400.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, plan.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, plan.ErrUnknownSection), errors.Is(err, plan.ErrUnknownBook):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPersistenceDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, storage.ErrPlanNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
