package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"shop-service/internal/domain"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// saveImage stores the optional "image" upload in the upload directory and
// returns its public URL, or "" when no file was sent.
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	base := filepath.Base(file.Filename)
	if base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	name := fmt.Sprintf("%d%s", h.now().UnixMilli(), base)
	if err := c.SaveUploadedFile(file, filepath.Join(h.opts.UploadDir, name)); err != nil {
		return "", err
	}
	return services.ImageURL(name), nil
}

// discardImage removes an upload whose record could not be written.
func (h *Handler) discardImage(url string) {
	if url == "" {
		return
	}
	if err := os.Remove(filepath.Join(h.opts.UploadDir, path.Base(url))); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("discard uploaded image", zap.String("img", url), zap.Error(err))
	}
}

func (h *Handler) AddProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	img, err := h.saveImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	p := form.product()
	p.Img = img
	if err := h.svc.Stock.CreateProduct(c.Request.Context(), p); err != nil {
		h.discardImage(img)
		h.fail(c, err)
		return
	}
	success(c, "Product created successfully!")
}

func (h *Handler) EditProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	err := h.svc.Stock.UpdateProduct(c.Request.Context(), form.product())
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		danger(c, msgEditFailed)
	case err != nil:
		h.fail(c, err)
	default:
		success(c, "Product updated successfully!")
	}
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil || req.ProductID == 0 {
		danger(c, msgDeleteFailed)
		return
	}
	err := h.svc.Stock.DeleteProduct(c.Request.Context(), req.ProductID)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		danger(c, msgDeleteFailed)
	case err != nil:
		h.fail(c, err)
	default:
		success(c, "Product deleted successfully!")
	}
}

func (h *Handler) AddCategory(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	img, err := h.saveImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	category := &domain.Category{Name: form.Name, Img: img, StatusActive: form.Active}
	if err := h.svc.Catalog.CreateCategory(c.Request.Context(), category); err != nil {
		h.discardImage(img)
		h.fail(c, err)
		return
	}
	success(c, "Category created successfully!")
}

func (h *Handler) EditCategory(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	img, err := h.saveImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if img == "" {
		img = form.Image
	}

	category := &domain.Category{ID: form.ID, Name: form.Name, Img: img, StatusActive: form.Active}
	err = h.svc.Catalog.UpdateCategory(c.Request.Context(), category)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		danger(c, msgEditFailed)
	case err != nil:
		if img != form.Image {
			h.discardImage(img)
		}
		h.fail(c, err)
	default:
		success(c, "Category updated successfully!")
	}
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil || req.CategoryID == 0 {
		danger(c, msgDeleteFailed)
		return
	}
	err := h.svc.Catalog.DeleteCategory(c.Request.Context(), req.CategoryID)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		danger(c, msgDeleteFailed)
	case err != nil:
		h.fail(c, err)
	default:
		success(c, "Category deleted successfully!")
	}
}

func (h *Handler) AddDiscount(c *gin.Context) {
	var form discountForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	if err := h.svc.Catalog.CreateDiscount(c.Request.Context(), form.discount()); err != nil {
		h.fail(c, err)
		return
	}
	success(c, "Discount created successfully!")
}

func (h *Handler) EditDiscount(c *gin.Context) {
	var form discountForm
	if err := c.ShouldBind(&form); err != nil {
		danger(c, err.Error())
		return
	}
	err := h.svc.Catalog.UpdateDiscount(c.Request.Context(), form.discount())
	switch {
	case errors.Is(err, services.ErrDiscountNotFound):
		danger(c, msgEditFailed)
	case err != nil:
		h.fail(c, err)
	default:
		success(c, "Discount updated successfully!")
	}
}

func (h *Handler) DeleteDiscount(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil || req.DiscountID == 0 {
		danger(c, msgDeleteFailed)
		return
	}
	err := h.svc.Catalog.DeleteDiscount(c.Request.Context(), req.DiscountID)
	switch {
	case errors.Is(err, services.ErrDiscountNotFound):
		danger(c, msgDeleteFailed)
	case err != nil:
		h.fail(c, err)
	default:
		success(c, "Discount code deleted successfully!")
	}
}
