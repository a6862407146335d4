package route

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"evboard/src-server/model"
	"evboard/src-server/notify"
	"evboard/src-server/page"
	"evboard/src-server/utils"
	"evboard/src-server/view"
)

// NewPageRegistry wires pages to the app's database, date parser and metric channels.
func NewPageRegistry(as *utils.AppState, notifier notify.Notifier, observer page.Observer) *page.Registry {
	return page.NewRegistry(page.Options{
		NewStore: func(pageID string) page.EventStore {
			events := model.NewPageEvents(as.BunDB, pageID)
			events.OnRead = as.MetricChans.ObserveDatabaseRead
			events.OnWrite = as.MetricChans.ObserveDatabaseWrite
			return events
		},
		TTL:      as.Config.GetPageTTL(),
		When:     as.When,
		Location: as.Config.GetLocation(),
		Notifier: notifier,
		Observer: observer,
	})
}

func pagePath(id string) string {
	return "/p/" + id
}

func render(w http.ResponseWriter, r *http.Request, p *page.EventPage, status int) {
	v, err := p.View(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Can't load events"))
		slog.Error("can't load events", "page", p.ID(), "error", err)
		return
	}
	if err := view.Render(w, status, view.NewLayoutData(v)); err != nil {
		slog.Error("can't render page", "page", p.ID(), "error", err)
	}
}

// formValues keeps only the form fields the request actually carried.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string)
	for _, name := range append(append([]string{}, page.TextFields...), page.FieldImage) {
		if vs, ok := r.PostForm[name]; ok && len(vs) > 0 {
			values[name] = vs[0]
		}
	}
	return values
}

func Page(muxer *http.ServeMux, as *utils.AppState, registry *page.Registry) {
	// every visit to / is a fresh page
	muxer.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		p, err := registry.Create(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't create page"))
			slog.Error("can't create page", "error", err)
			return
		}
		http.Redirect(w, r, pagePath(p.ID()), http.StatusSeeOther)
	})

	muxer.HandleFunc("GET /p/{pageID}", PageMiddleware(registry,
		func(w http.ResponseWriter, r *http.Request) {
			p, ok := pageFromContext(r)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get page from middleware"))
				return
			}
			render(w, r, p, http.StatusOK)
		}))

	muxer.HandleFunc("POST /p/{pageID}/modal", PageMiddleware(registry,
		func(w http.ResponseWriter, r *http.Request) {
			p, ok := pageFromContext(r)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get page from middleware"))
				return
			}
			p.OpenModal()
			http.Redirect(w, r, pagePath(p.ID()), http.StatusSeeOther)
		}))

	// Cancel keeps whatever was typed so far, the modal just hides
	muxer.HandleFunc("POST /p/{pageID}/modal/cancel", PageMiddleware(registry,
		func(w http.ResponseWriter, r *http.Request) {
			p, ok := pageFromContext(r)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get page from middleware"))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, as.Config.GetMaxUploadBytes())
			if err := r.ParseForm(); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid form"))
				return
			}
			if err := p.Fill(formValues(r), nil, ""); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid form"))
				return
			}
			p.CancelModal()
			http.Redirect(w, r, pagePath(p.ID()), http.StatusSeeOther)
		}))

	// add an event; multipart so the image file rides along
	muxer.HandleFunc("POST /p/{pageID}/events", PageMiddleware(registry,
		func(w http.ResponseWriter, r *http.Request) {
			p, ok := pageFromContext(r)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get page from middleware"))
				return
			}

			// #region - parse form
			r.Body = http.MaxBytesReader(w, r.Body, as.Config.GetMaxUploadBytes())
			err := r.ParseMultipartForm(as.Config.GetMaxUploadBytes())
			if errors.Is(err, http.ErrNotMultipart) {
				err = r.ParseForm()
			}
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					w.Write([]byte("Upload too large"))
					return
				}
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid form"))
				return
			}

			var image io.Reader
			var imageContentType string
			file, header, err := r.FormFile("image-file")
			switch {
			case err == nil:
				defer file.Close()
				image = file
				imageContentType = header.Header.Get("Content-Type")
			case !errors.Is(err, http.ErrMissingFile):
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Can't read image"))
				return
			}
			// #endregion

			if err := p.Fill(formValues(r), image, imageContentType); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid form"))
				return
			}

			switch err := p.SubmitForm(r.Context()); {
			case errors.Is(err, page.ErrMissingFields):
				render(w, r, p, http.StatusUnprocessableEntity)
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't add event"))
				slog.Error("can't add event", "page", p.ID(), "error", err)
				return
			}
			http.Redirect(w, r, pagePath(p.ID()), http.StatusSeeOther)
		}))

	muxer.HandleFunc("POST /p/{pageID}/events/{eventID}/register", PageMiddleware(registry,
		func(w http.ResponseWriter, r *http.Request) {
			p, ok := pageFromContext(r)
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get page from middleware"))
				return
			}

			switch err := p.Register(r.Context(), r.PathValue("eventID")); {
			case errors.Is(err, page.ErrEventExpired):
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte("Event expired"))
				return
			case errors.Is(err, page.ErrEventNotFound):
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("Event not found"))
				return
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't register"))
				slog.Error("can't register", "page", p.ID(), "error", err)
				return
			}
			http.Redirect(w, r, pagePath(p.ID()), http.StatusSeeOther)
		}))
}
