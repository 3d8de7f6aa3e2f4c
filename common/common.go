package common

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Used to represent the classifier train status
const (
	TrainStatusUnknown = iota
	TrainStatusError
	TrainStatusInProgress
	TrainStatusDone
)

// Logger holds several logger instances with different prefixes
type Logger struct {
	Warn *log.Logger
	Info *log.Logger
	Err  *log.Logger
}

// GetNewLogger creates an instance of all needed loggers
func GetNewLogger() *Logger {
	return &Logger{
		Warn: log.New(os.Stderr, "[ Warn ] ", log.LstdFlags|log.Lshortfile),
		Info: log.New(os.Stderr, "[ Info ] ", log.LstdFlags|log.Lshortfile),
		Err:  log.New(os.Stderr, "[ Error ] ", log.LstdFlags|log.Lshortfile),
	}
}

// PredictionRecord holds a single class probability
type PredictionRecord struct {
	ClassIndex int     `json:"classIndex"`
	Prob       float64 `json:"prob"`
}

// ResponseData holds the response data of any handler
type ResponseData struct {
	Results interface{} `json:"results,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RequestData used for unpacking the request payload for Put/Predict calls
type RequestData struct {
	ID     string    `json:"id,omitempty"`
	Vec    []float64 `json:"vec,omitempty"`
	Class  float64   `json:"class,omitempty"`
	Weight float64   `json:"weight,omitempty"`
}

// GetRandomID generates random alphanumeric string
func GetRandomID() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	s := fmt.Sprintf("%x", b)
	return s, nil
}

// Decorator wraps an http.Handler with additional functionality
type Decorator func(http.Handler) http.Handler

// Decorate handler with all specified decorators
func Decorate(h http.Handler, decorators ...Decorator) http.Handler {
	// apply decorator backwards so that they are executed in declared order
	for i := len(decorators) - 1; i >= 0; i-- {
		h = decorators[i](h)
	}
	return h
}

// Timer logs the time taken processing the request
func Timer(logger *Logger) Decorator {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			h.ServeHTTP(w, r)
			elapsed := time.Since(start)
			logger.Info.Printf("Elapsed time: %v (%v)\n", elapsed, r.URL)
		})
	}
}
