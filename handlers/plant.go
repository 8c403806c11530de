package handlers

import (
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strconv"

	// image.Decode format'ları blank import ile tanır —
	// import edilmeyen format "unknown format" hatası verir.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/services"
)

// maxUploadBytes, multipart upload'un bellekte tutulacak üst sınırı.
// Aşan kısım geçici dosyaya yazılır (ParseMultipartForm davranışı).
const maxUploadBytes = 32 << 20 // 32 MB

// PlantHandler, bitki endpoint'lerini yöneten struct.
type PlantHandler struct {
	plantService services.PlantService
}

// NewPlantHandler, constructor.
func NewPlantHandler(plantService services.PlantService) *PlantHandler {
	return &PlantHandler{plantService: plantService}
}

// List godoc
// GET /api/v1/plants
// Hesabın tüm bitkilerini, her biri taze bir presigned imageURL ile döner.
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plantService.List(r.Context(), sessionTokenFromRequest(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plants)
}

// Get godoc
// GET /api/v1/plants/{plantID}
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	plant, err := h.plantService.Get(r.Context(), sessionTokenFromRequest(r), r.PathValue("plantID"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plant)
}

// Create godoc
// POST /api/v1/plants
// Body: {plantName, lastWatered, wateringInterval}
// registrationID sunucuda üretilir ve yanıtta döner — kullanıcı bunu
// cihaz firmware'ine girer.
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PlantRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plant, err := h.plantService.Create(r.Context(), sessionTokenFromRequest(r), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plant)
}

// Update godoc
// PUT /api/v1/plants
// Body: güncellenecek bitkinin tam JSON'ı (id dahil).
// registrationID ve fotoğraf bu endpoint'ten DEĞİŞMEZ — body'de gelseler
// bile yoksayılır.
func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body models.Plant

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := models.PlantRequest{
		PlantName:        body.PlantName,
		LastWatered:      body.LastWatered,
		WateringInterval: body.WateringInterval,
	}

	plant, err := h.plantService.Update(r.Context(), sessionTokenFromRequest(r),
		strconv.FormatInt(body.ID, 10), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plant)
}

// UploadImage godoc
// PUT /api/v1/plants/{plantID}
// Body: multipart/form-data, "file" alanında görüntü (jpeg/png/gif).
// Decode edilemeyen dosya 400 döner, geçerli görüntü gerekirse küçültülüp
// JPEG olarak bucket'a yazılır.
func (h *PlantHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		pkg.Body(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		pkg.Body(w, http.StatusBadRequest, fmt.Sprintf("unsupported image: %v", err))
		return
	}

	plant, err := h.plantService.UpdateImage(r.Context(), sessionTokenFromRequest(r),
		r.PathValue("plantID"), img)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plant)
}

// Delete godoc
// DELETE /api/v1/plants/{plantID}
// Silinen bitkinin son hali döner (imageURL'süz — fotoğraf da silindi).
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	plant, err := h.plantService.Delete(r.Context(), sessionTokenFromRequest(r), r.PathValue("plantID"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, plant)
}
