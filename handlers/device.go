package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/botaniclock/server/models"
	"github.com/botaniclock/server/pkg"
	"github.com/botaniclock/server/services"
)

// DeviceHandler, IoT cihaz endpoint'lerini yöneten struct.
//
// Cihazlar cookie taşımaz: her istekte {registrationID, accountEmail}
// çiftiyle kendilerini tanıtırlar. Çift bitkiyle eşleşmezse 404 döner —
// hangi parçanın yanlış olduğu yanıttan anlaşılamaz.
type DeviceHandler struct {
	plantService services.PlantService
}

// NewDeviceHandler, constructor.
func NewDeviceHandler(plantService services.PlantService) *DeviceHandler {
	return &DeviceHandler{plantService: plantService}
}

// Register godoc
// POST /api/v1/devices
// Cihaz kurulumda bir kez çağırır: kimlik çifti doğruysa 200 DEVICE_VALID.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	var device models.Device

	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.plantService.ConfirmDevice(r.Context(), &device); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.Body(w, http.StatusOK, "DEVICE_VALID")
}

// UpdateTimestamp godoc
// PUT /api/v1/devices
// Cihaz sulama yaptığında çağırır: bitkinin lastWatered'ı bugüne çekilir.
func (h *DeviceHandler) UpdateTimestamp(w http.ResponseWriter, r *http.Request) {
	var device models.Device

	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		pkg.Body(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.plantService.UpdateTimestamp(r.Context(), &device); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.Body(w, http.StatusOK, "TIMESTAMP_UPDATED")
}
