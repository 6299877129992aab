package http

import "github.com/gin-gonic/gin"

func (h *Handler) Favourites(c *gin.Context) {
	favs, err := h.svc.Favourites.List(c.Request.Context(), customerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, favs)
}

func (h *Handler) AddFavourite(c *gin.Context) {
	productID, ok := parseID(c, "prodId")
	if !ok {
		return
	}
	rows, err := h.svc.Favourites.Add(c.Request.Context(), customerID(c), productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: rows})
}

func (h *Handler) RemoveFavourite(c *gin.Context) {
	productID, ok := parseID(c, "prodId")
	if !ok {
		return
	}
	rows, err := h.svc.Favourites.Remove(c.Request.Context(), customerID(c), productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	outcome(c, writeResult{AffectedRows: rows})
}
