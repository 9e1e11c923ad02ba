// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/amoodyplace/moodyplace-go/internal/model"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/util"
	"github.com/amoodyplace/moodyplace-go/internal/validation"
)

// SubmitContact handles POST /api/contact: the public contact form.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in validation.ContactInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if h.validationFailed(w, in.Validate()) {
		return
	}

	inquiry := &model.ContactInquiry{
		Name:                   in.Name,
		Email:                  in.Email,
		Phone:                  util.NullStringFromValue(in.Phone),
		CompanyOrganization:    util.NullStringFromValue(in.CompanyOrganization),
		InquiryType:            in.InquiryType,
		Subject:                util.NullStringFromValue(in.Subject),
		Message:                in.Message,
		PreferredContactMethod: util.NullStringFromValue(in.PreferredContactMethod),
		Urgency:                in.Urgency,
	}
	id, err := h.contact.Create(r.Context(), inquiry)
	if err != nil {
		h.renderer.Internal(w, err, "creating contact inquiry")
		return
	}

	h.events.RecordContact(r.Context(), id, in.InquiryType, clientIP(r), r.UserAgent())

	h.renderer.SuccessStatus(w, http.StatusCreated, map[string]any{"id": id},
		"Thank you for reaching out. Your message has been received.")
}

// AdminListContacts handles GET /api/admin/contacts.
func (h *Handler) AdminListContacts(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	inquiries, err := h.contact.List(r.Context(), limit, offsetFor(page, limit))
	if err != nil {
		h.renderer.Internal(w, err, "listing contact inquiries")
		return
	}
	total, err := h.contact.Count(r.Context())
	if err != nil {
		h.renderer.Internal(w, err, "counting contact inquiries")
		return
	}
	h.renderer.Paginated(w, inquiries, render.NewPagination(page, limit, total))
}

// AdminGetContact handles GET /api/admin/contacts/{id}.
func (h *Handler) AdminGetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	inquiry, err := h.contact.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Inquiry not found")
			return
		}
		h.renderer.Internal(w, err, "getting contact inquiry", "id", id)
		return
	}
	h.renderer.Success(w, inquiry, "")
}

// respondedInput is the responded-flag payload.
type respondedInput struct {
	IsResponded bool `json:"is_responded"`
}

// AdminSetContactResponded handles PATCH /api/admin/contacts/{id}/responded.
func (h *Handler) AdminSetContactResponded(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.contact.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Inquiry not found")
			return
		}
		h.renderer.Internal(w, err, "getting contact inquiry", "id", id)
		return
	}

	var in respondedInput
	if !h.decodeJSON(w, r, &in) {
		return
	}
	if err := h.contact.SetResponded(r.Context(), id, in.IsResponded); err != nil {
		h.renderer.Internal(w, err, "updating contact inquiry", "id", id)
		return
	}

	h.renderer.Success(w, map[string]any{"id": id, "is_responded": in.IsResponded}, "Inquiry updated")
}

// AdminDeleteContact handles DELETE /api/admin/contacts/{id}.
func (h *Handler) AdminDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.contact.GetByID(r.Context(), id); err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "Inquiry not found")
			return
		}
		h.renderer.Internal(w, err, "getting contact inquiry", "id", id)
		return
	}
	if err := h.contact.Delete(r.Context(), id); err != nil {
		h.renderer.Internal(w, err, "deleting contact inquiry", "id", id)
		return
	}
	h.renderer.Success(w, nil, "Inquiry deleted")
}
