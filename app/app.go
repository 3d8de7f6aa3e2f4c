package app

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sync"

	cm "github.com/gasparian/knn-search-go/common"
	"github.com/gasparian/knn-search-go/dataset"
	"github.com/gasparian/knn-search-go/knn"
	"github.com/gasparian/knn-search-go/store"
	guuid "github.com/google/uuid"
)

var (
	helloMessage = getHelloMessage()
)

// Server holds the classifier, the instance store and the loggers
type Server struct {
	mx         sync.RWMutex
	Classifier *knn.Classifier
	Store      store.Store
	Logger     *cm.Logger
	Config     ServiceConfig
}

// New creates a server around the given classifier and instance store
func New(config ServiceConfig, classifier *knn.Classifier, instStore store.Store) *Server {
	return &Server{
		Classifier: classifier,
		Store:      instStore,
		Logger:     cm.GetNewLogger(),
		Config:     config,
	}
}

// HealthCheck just checks that server is up and running;
// also gives back list of available methods
func (server *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(helloMessage)
}

// PutInstanceHandler stores a single labeled instance
func (server *Server) PutInstanceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusNotImplemented)
		w.Write([]byte(http.StatusText(http.StatusNotImplemented)))
		return
	}
	var input cm.RequestData
	if err := decodeBody(r, &input); err != nil {
		server.Logger.Err.Println("Put instance: " + err.Error())
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	inst := dataset.Instance{
		Vec:    input.Vec,
		Class:  input.Class,
		Weight: input.Weight,
	}
	id := input.ID
	if id == "" {
		id = guuid.NewString()
	}
	server.mx.Lock()
	err := server.Store.SetInstance(id, inst)
	server.mx.Unlock()
	if err != nil {
		server.Logger.Err.Println("Put instance: " + err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeResponse(w, cm.ResponseData{Results: id})
}

// TrainHandler rebuilds the classifier from the stored instances
func (server *Server) TrainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusNotImplemented)
		w.Write([]byte(http.StatusText(http.StatusNotImplemented)))
		return
	}
	server.mx.Lock()
	defer server.mx.Unlock()
	ds, err := server.collectDataset()
	if err != nil {
		server.Logger.Err.Println("Train: " + err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := server.Classifier.Fit(ds); err != nil {
		server.Logger.Err.Println("Train: " + err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	server.Logger.Info.Printf("Trained on %v instances", ds.Size())
	writeResponse(w, cm.ResponseData{Message: server.Classifier.String()})
}

// PredictHandler returns the class distribution for the query point
func (server *Server) PredictHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusNotImplemented)
		w.Write([]byte(http.StatusText(http.StatusNotImplemented)))
		return
	}
	var input cm.RequestData
	if err := decodeBody(r, &input); err != nil {
		server.Logger.Err.Println("Predict: " + err.Error())
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	server.mx.RLock()
	distribution, err := server.Classifier.Distribution(dataset.NewInstance(input.Vec, 0))
	server.mx.RUnlock()
	if err != nil {
		server.Logger.Err.Println("Predict: " + err.Error())
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	records := make([]cm.PredictionRecord, len(distribution))
	for i, prob := range distribution {
		records[i] = cm.PredictionRecord{ClassIndex: i, Prob: prob}
	}
	writeResponse(w, cm.ResponseData{Results: records})
}

// ModelHandler returns the human-readable classifier description
func (server *Server) ModelHandler(w http.ResponseWriter, r *http.Request) {
	server.mx.RLock()
	described := server.Classifier.String()
	server.mx.RUnlock()
	writeResponse(w, cm.ResponseData{Message: described})
}

// collectDataset drains the instance store into a fresh dataset
func (server *Server) collectDataset() (*dataset.Dataset, error) {
	ds := dataset.New(server.Config.ClassType, server.Config.NumClasses, server.Config.NumAttrs)
	it, err := server.Store.GetIterator()
	if err != nil {
		return nil, err
	}
	for {
		id, ok := it.Next()
		if !ok {
			break
		}
		inst, err := server.Store.GetInstance(id)
		if err != nil {
			return nil, err
		}
		if err := ds.Add(inst); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Run starts serving the classification api
func (server *Server) Run(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", cm.Decorate(http.HandlerFunc(server.HealthCheck), cm.Timer(server.Logger)))
	mux.Handle("/put-instance", cm.Decorate(http.HandlerFunc(server.PutInstanceHandler), cm.Timer(server.Logger)))
	mux.Handle("/train", cm.Decorate(http.HandlerFunc(server.TrainHandler), cm.Timer(server.Logger)))
	mux.Handle("/predict", cm.Decorate(http.HandlerFunc(server.PredictHandler), cm.Timer(server.Logger)))
	mux.Handle("/model", cm.Decorate(http.HandlerFunc(server.ModelHandler), cm.Timer(server.Logger)))
	return http.ListenAndServe(addr, mux)
}

func decodeBody(r *http.Request, target interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}

func writeResponse(w http.ResponseWriter, resp cm.ResponseData) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
