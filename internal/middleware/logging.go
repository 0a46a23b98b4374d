package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shravanasati/filesrv/internal/request"
	"github.com/shravanasati/filesrv/internal/response"
	"github.com/shravanasati/filesrv/internal/server"
)

// Logging writes one plain line per request to l.
func Logging(l *log.Logger) server.Middleware {
	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			now := time.Now()
			resp := next(r)
			l.Printf("%s %s %d %s in %s", r.Method, r.Target, resp.GetStatusCode(), requestID(resp), time.Since(now))
			return resp
		}
	}
}

// LoggingColored is Logging with the method and status styled for a terminal.
func LoggingColored(l *log.Logger) server.Middleware {
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Width(8).Align(lipgloss.Center)
	idStyle := lipgloss.NewStyle().Faint(true)

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) response.Response {
			now := time.Now()
			resp := next(r)

			statusCode := int(resp.GetStatusCode())
			styledStatus := getStatusCodeStyle(statusCode).Render(fmt.Sprintf("%d", statusCode))
			styledMethod := methodStyle.Render(r.Method)

			l.Printf("%s %s %s %s in %s", styledMethod, r.Target, styledStatus, idStyle.Render(requestID(resp)), time.Since(now))
			return resp
		}
	}
}

func requestID(resp response.Response) string {
	if id := resp.GetHeaders().Get(RequestIDHeader); id != "" {
		return id
	}
	return "-"
}

// getStatusCodeStyle returns a lipgloss style for HTTP status codes
func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		// 2xx Success - Green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		// 3xx Redirection - Yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		// 4xx Client Error - Orange
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		// 5xx Server Error - Bright Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
