package inkwell

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/inkwell/views"
)

const jpegQuality = 80

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func (a *App) handleUploader(c echo.Context) error {
	if !isAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}
	return Render(c, views.Uploader(a.site, popFlash(c), CsrfToken(c)))
}

// handleUpload stores exactly one uploaded file under the configured uploads
// directory. The filename is sanitized against traversal, the size and
// extension limits come from config, and an existing file of the same name
// is overwritten.
func (a *App) handleUpload(c echo.Context) error {
	if !isAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/dashboard/")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return a.uploadFailed(c, "No file provided.")
	}
	if file.Size > a.Config.Uploads.MaxSize {
		return a.uploadFailed(c, fmt.Sprintf("File too large (max %d bytes).", a.Config.Uploads.MaxSize))
	}

	name := SanitizeFilename(file.Filename)
	if name == "" {
		return a.uploadFailed(c, "Unusable filename.")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !a.extensionAllowed(ext) {
		return a.uploadFailed(c, "File type not allowed.")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	var data []byte
	if a.Config.Uploads.ProcessImages && imageExtensions[ext] {
		data, err = reencodeImage(src, a.Config.Uploads.MaxImageWidth)
		if err != nil {
			return a.uploadFailed(c, "Invalid image: "+err.Error())
		}
		name = strings.TrimSuffix(name, ext) + ".jpg"
	} else {
		data, err = io.ReadAll(io.LimitReader(src, a.Config.Uploads.MaxSize+1))
		if err != nil {
			return err
		}
		if int64(len(data)) > a.Config.Uploads.MaxSize {
			return a.uploadFailed(c, fmt.Sprintf("File too large (max %d bytes).", a.Config.Uploads.MaxSize))
		}
	}

	dest, err := a.uploadPath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}

	if err := setFlash(c, "success", "Uploaded "+name+" successfully."); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/uploader/")
}

func (a *App) uploadFailed(c echo.Context, reason string) error {
	if err := setFlash(c, "warning", reason); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/uploader/")
}

func (a *App) extensionAllowed(ext string) bool {
	for _, allowed := range a.Config.Uploads.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

// uploadPath joins name onto the uploads directory and rejects any result
// that escapes it. SanitizeFilename already flattens names; this guards the
// invariant independently.
func (a *App) uploadPath(name string) (string, error) {
	root, err := filepath.Abs(a.Config.Uploads.Dir)
	if err != nil {
		return "", fmt.Errorf("resolve uploads dir: %w", err)
	}
	joined := filepath.Join(root, filepath.Clean(name))
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve upload path: %w", err)
	}
	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("upload path escapes uploads dir: %s", name)
	}
	return abs, nil
}

// reencodeImage decodes src, downscales it to maxWidth if wider, and encodes
// it as JPEG.
func reencodeImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
