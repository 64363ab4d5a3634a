package pets

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pet-registry/internal/domain/errs"
	"pet-registry/internal/domain/microchips"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		// Búsqueda exacta por tag (identificador externo)
		pr.Get("/by-tag/{tag}", findByTagHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		// Baja segura: desasocia y luego borra el microchip
		pr.Delete("/{petID}/microchip/{microchipID}", removeMicrochipHandler(svc))
	})
}

type microchipPayload struct {
	ID    int64  `json:"id"` // 0 = crear uno nuevo
	Code  string `json:"code"`
	Brand string `json:"brand"`
}

type petRequest struct {
	Name      string            `json:"name"`
	Species   string            `json:"species"`
	TagCode   string            `json:"tag_code"`
	Microchip *microchipPayload `json:"microchip"`
}

type microchipResponse struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Brand   string `json:"brand"`
	Deleted bool   `json:"deleted,omitempty"` // solo si quedó referenciado tras un borrado directo
}

type petResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Species   string             `json:"species"`
	TagCode   string             `json:"tag_code"`
	Microchip *microchipResponse `json:"microchip"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Code    errs.Code         `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// createPetHandler godoc
// @Summary  Create pet (and its microchip when id is 0)
// @Tags     pets
// @Accept   json
// @Produce  json
// @Success  201 {object} petResponse
// @Failure  400 {object} errorResponse
// @Router   /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req petRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, errs.Validation("invalid json"))
			return
		}

		p, err := svc.Create(r.Context(), req.toPet(0))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary  List pets, optionally filtered by name or species (?q=)
// @Tags     pets
// @Produce  json
// @Param    q query string false "substring of name or species"
// @Success  200 {array} petResponse
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Pet
			err   error
		)
		if q, ok := r.URL.Query()["q"]; ok {
			items, err = svc.SearchByNameOrSpecies(r.Context(), q[0])
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary  Get pet by id
// @Tags     pets
// @Produce  json
// @Param    petID path int true "pet id"
// @Success  200 {object} petResponse
// @Failure  404 {object} errorResponse
// @Router   /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "petID")
		if err != nil {
			writeError(w, err)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if p == nil {
			writeError(w, errs.NotFound("pet not found"))
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(*p))
	}
}

// findByTagHandler godoc
// @Summary  Find pet by exact tag code
// @Tags     pets
// @Produce  json
// @Param    tag path string true "tag code"
// @Success  200 {object} petResponse
// @Failure  404 {object} errorResponse
// @Router   /pets/by-tag/{tag} [get]
func findByTagHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.FindByExactTag(r.Context(), chi.URLParam(r, "tag"))
		if err != nil {
			writeError(w, err)
			return
		}
		if p == nil {
			writeError(w, errs.NotFound("pet not found"))
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(*p))
	}
}

// updatePetHandler godoc
// @Summary  Replace pet fields
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path int true "pet id"
// @Success  200 {object} petResponse
// @Failure  400 {object} errorResponse
// @Failure  404 {object} errorResponse
// @Router   /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "petID")
		if err != nil {
			writeError(w, err)
			return
		}

		var req petRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, errs.Validation("invalid json"))
			return
		}

		updated, err := svc.Update(r.Context(), req.toPet(id))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary  Soft-delete pet (its microchip is kept)
// @Tags     pets
// @Param    petID path int true "pet id"
// @Success  204
// @Failure  404 {object} errorResponse
// @Router   /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "petID")
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

// removeMicrochipHandler godoc
// @Summary  Detach the pet's microchip, then soft-delete it
// @Tags     pets
// @Param    petID       path int true "pet id"
// @Param    microchipID path int true "microchip id"
// @Success  204
// @Failure  400 {object} errorResponse
// @Failure  409 {object} errorResponse
// @Router   /pets/{petID}/microchip/{microchipID} [delete]
func removeMicrochipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := pathID(r, "petID")
		if err != nil {
			writeError(w, err)
			return
		}
		chipID, err := pathID(r, "microchipID")
		if err != nil {
			writeError(w, err)
			return
		}

		if err := svc.SafelyRemoveMicrochip(r.Context(), petID, chipID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req petRequest) toPet(id int64) Pet {
	p := Pet{
		Name:    req.Name,
		Species: req.Species,
		TagCode: req.TagCode,
	}
	p.ID = id

	if req.Microchip != nil {
		m := microchips.Microchip{Code: req.Microchip.Code, Brand: req.Microchip.Brand}
		m.ID = req.Microchip.ID
		p.Microchip = &m
	}
	return p
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		TagCode: p.TagCode,
	}
	if p.Microchip != nil {
		out.Microchip = &microchipResponse{
			ID:      p.Microchip.ID,
			Code:    p.Microchip.Code,
			Brand:   p.Microchip.Brand,
			Deleted: p.Microchip.Deleted,
		}
	}
	return out
}

func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, errs.Validation("%s must be an integer", param)
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
