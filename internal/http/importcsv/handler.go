package importcsv

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
	httpexpense "github.com/MrJamesThe3rd/finsight/internal/http/expense"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type paramsDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

type conflictDTO struct {
	Incoming paramsDTO            `json:"incoming"`
	Existing httpexpense.Response `json:"existing"`
}

type importSuccessResponse struct {
	Imported int                    `json:"imported"`
	Expenses []httpexpense.Response `json:"expenses"`
}

type importConflictResponse struct {
	New       []paramsDTO   `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

type confirmRequest struct {
	Params []paramsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]paramsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: httpexpense.ToResponseList([]expense.Expense{c.Existing})[0],
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]expense.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		date, err := expense.ParseDate(p.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params = append(params, expense.CreateParams{
			Description: p.Description,
			Amount:      p.Amount,
			Date:        date,
			Category:    p.Category,
		})
	}

	created, err := h.importSvc.CreateBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(created))
}

func toSuccessResponse(expenses []expense.Expense) importSuccessResponse {
	return importSuccessResponse{
		Imported: len(expenses),
		Expenses: httpexpense.ToResponseList(expenses),
	}
}

func toParamsDTO(p expense.CreateParams) paramsDTO {
	return paramsDTO{
		Description: p.Description,
		Amount:      p.Amount,
		Date:        p.Date.Format(time.DateOnly),
		Category:    p.Category,
	}
}
