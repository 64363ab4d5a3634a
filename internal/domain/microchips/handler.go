package microchips

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pet-registry/internal/domain/errs"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/microchips", func(mr chi.Router) {
		mr.Post("/", createMicrochipHandler(svc))
		mr.Get("/", listMicrochipsHandler(svc))
		mr.Get("/{microchipID}", getMicrochipHandler(svc))
		mr.Put("/{microchipID}", updateMicrochipHandler(svc))

		// Borrado directo: NO verifica mascotas que lo referencian.
		// Para eso está DELETE /pets/{petID}/microchip/{microchipID}.
		mr.Delete("/{microchipID}", deleteMicrochipHandler(svc))
	})
}

type microchipRequest struct {
	Code  string `json:"code"`
	Brand string `json:"brand"`
}

type microchipResponse struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Brand string `json:"brand"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Code    errs.Code         `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// createMicrochipHandler godoc
// @Summary  Create microchip
// @Tags     microchips
// @Accept   json
// @Produce  json
// @Success  201 {object} microchipResponse
// @Failure  400 {object} errorResponse
// @Router   /microchips [post]
func createMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req microchipRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, errs.Validation("invalid json"))
			return
		}

		m, err := svc.Create(r.Context(), Microchip{Code: req.Code, Brand: req.Brand})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMicrochipResponse(m))
	}
}

// listMicrochipsHandler godoc
// @Summary  List active microchips
// @Tags     microchips
// @Produce  json
// @Success  200 {array} microchipResponse
// @Router   /microchips [get]
func listMicrochipsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]microchipResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMicrochipResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getMicrochipHandler godoc
// @Summary  Get microchip by id
// @Tags     microchips
// @Produce  json
// @Param    microchipID path int true "microchip id"
// @Success  200 {object} microchipResponse
// @Failure  404 {object} errorResponse
// @Router   /microchips/{microchipID} [get]
func getMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		m, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if m == nil {
			writeError(w, errs.NotFound("microchip not found"))
			return
		}
		writeJSON(w, http.StatusOK, toMicrochipResponse(*m))
	}
}

// updateMicrochipHandler godoc
// @Summary  Replace microchip fields
// @Tags     microchips
// @Accept   json
// @Produce  json
// @Param    microchipID path int true "microchip id"
// @Success  200 {object} microchipResponse
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Router   /microchips/{microchipID} [put]
func updateMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req microchipRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, errs.Validation("invalid json"))
			return
		}

		in := Microchip{Code: req.Code, Brand: req.Brand}
		in.ID = id
		m, err := svc.Update(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMicrochipResponse(m))
	}
}

// deleteMicrochipHandler godoc
// @Summary  Soft-delete microchip without checking referencing pets
// @Tags     microchips
// @Param    microchipID path int true "microchip id"
// @Success  204
// @Failure  404 {object} errorResponse
// @Router   /microchips/{microchipID} [delete]
func deleteMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toMicrochipResponse(m Microchip) microchipResponse {
	return microchipResponse{ID: m.ID, Code: m.Code, Brand: m.Brand}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "microchipID"), 10, 64)
	if err != nil {
		return 0, errs.Validation("microchipID must be an integer")
	}
	return id, nil
}

// decodeJSON rechaza campos desconocidos.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:   msg,
		Code:    errs.CodeOf(err),
		Details: errs.DetailsOf(err),
	})
}
