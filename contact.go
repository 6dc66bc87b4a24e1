package inkwell

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/views"
)

func (a *App) handleContact(c echo.Context) error {
	return Render(c, views.Contact(a.site, views.ContactForm{}, nil, popFlash(c), CsrfToken(c)))
}

// contactForm wraps the submitted values for validation.
type contactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (f contactForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Message, validation.Required),
	)
}

// fieldErrors flattens ozzo's validation.Errors into template-friendly form.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[strings.ToLower(field)] = ferr.Error()
		}
		return out
	}
	out["message"] = err.Error()
	return out
}

// handleContactSubmit persists the submission, then notifies the site owner
// within a bounded timeout. The database commit stands regardless of whether
// the notification succeeds; a mail failure only downgrades the flash.
func (a *App) handleContactSubmit(c echo.Context) error {
	form := contactForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Phone:   strings.TrimSpace(c.FormValue("phone")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	view := views.ContactForm{Name: form.Name, Email: form.Email, Phone: form.Phone, Message: form.Message}

	if err := form.Validate(); err != nil {
		return Render(c, views.Contact(a.site, view, fieldErrors(err), nil, CsrfToken(c)))
	}

	msg := views.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
		Date:    time.Now().Format(timeLayout),
	}
	if _, err := a.Store.CreateContact(msg); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			if err := setFlash(c, "warning", "We already have a message from this email address."); err != nil {
				return err
			}
			return c.Redirect(http.StatusSeeOther, "/contact/")
		}
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), a.Config.Mail.Timeout.Std())
	defer cancel()
	notifyErr := a.Sender.Notify(ctx, Submission{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	})
	if notifyErr != nil {
		c.Logger().Errorf("contact notification: %v", notifyErr)
		if err := setFlash(c, "warning", "Your message was saved, but we could not notify the site owner. We will still see it."); err != nil {
			return err
		}
	} else {
		if err := setFlash(c, "success", "Thanks for submitting your details. We will get back to you soon."); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}
