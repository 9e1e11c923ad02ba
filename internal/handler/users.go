// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

// AdminGetUser handles GET /api/admin/users/{id}. Route middleware
// restricts access to the account owner or an admin role.
func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if isNoRows(err) {
			h.renderer.NotFound(w, "User not found")
			return
		}
		h.renderer.Internal(w, err, "getting user", "id", id)
		return
	}
	h.renderer.Success(w, user, "")
}
