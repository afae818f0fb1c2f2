package subject_link_handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/porese500/simulacros/internal/app/handlers/http/common"
	"github.com/porese500/simulacros/internal/app/handlers/telegram/presenter"
	"github.com/porese500/simulacros/internal/domain/dto"
	"github.com/porese500/simulacros/internal/domain/model"
	httpError "github.com/porese500/simulacros/pkg/http"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

type SubjectLookup interface {
	GetSubject(ctx context.Context, id int) (*model.Subject, error)
}

// SubjectLinkHandler ссылка на запуск симулякра в боте и QR-код к ней
type SubjectLinkHandler struct {
	subjects    SubjectLookup
	botUsername string
}

// NewSubjectLinkHandler создает новый экземпляр обработчика
func NewSubjectLinkHandler(subjects SubjectLookup, botUsername string) *SubjectLinkHandler {
	return &SubjectLinkHandler{subjects: subjects, botUsername: botUsername}
}

// ServeHTTP GET /subjects/{id}/link
func (h *SubjectLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := common.PathID(r, "id")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Проверяем, существует ли предмет
	subject, err := h.subjects.GetSubject(r.Context(), id)
	if err != nil {
		httpError.ErrorResponse(w, common.StatusFromError(err), fmt.Sprintf("Subject with ID %d not found", id))
		return
	}

	link := presenter.DeepLink(h.botUsername, subject.ID)

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate QR code: %v", err))
		return
	}

	httpError.JSONResponse(w, http.StatusOK, dto.SubjectLinkResponse{
		Link:      link,
		QRCodePNG: base64.StdEncoding.EncodeToString(png),
	})
}
