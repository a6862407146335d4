package route

import (
	"fmt"
	"net/http"
	"runtime"

	"evboard/src-server/utils"
)

func Ping(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memUsage := float64(m.Sys) / 1024 / 1024

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "pong\nuptime: %s\nmemory: %.2f MiB\n", as.GetUptime(), memUsage)
	})
}
