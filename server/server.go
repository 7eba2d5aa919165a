package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	logging "github.com/op/go-logging"

	"github.com/rdxdkr/my-PNGme/common"
	"github.com/rdxdkr/my-PNGme/config"
	"github.com/rdxdkr/my-PNGme/png"
)

type roleType int

const (
	roleMaster roleType = iota
	roleReplica
)

// Server represents a pngme http server exposing one png file as a
// message store. The underlying png.File does no locking of its own,
// so every access goes through the server's locker.
type Server struct {
	bind        string
	fileName    string
	file        *png.File
	locker      sync.RWMutex
	role        roleType
	replicate   bool
	replicateTo string

	replClient *http.Client
}

var (
	log = logging.MustGetLogger("pngme")
)

// NewServer creates and configures a new Server instance serving
// a given decoded png file
func NewServer(file *png.File, cfg *config.ServerCfg) *Server {
	s := &Server{
		bind:      cfg.Bind,
		fileName:  cfg.PngFileName,
		file:      file,
		role:      roleReplica,
		replicate: false,
	}
	rtype := "replica"

	if cfg.IsMaster {
		s.role = roleMaster
		rtype = "master"
	}

	if cfg.ReplicateTo != "" {
		s.replicate = true
		s.replicateTo = cfg.ReplicateTo
		s.replClient = &http.Client{
			Timeout: cfg.ReplicationTimeout,
		}
	}

	log.Infof("Server configured as %s", rtype)
	return s
}

func (s *Server) checkReplication() error {
	log.Info("Checking replication...")
	resp, err := s.replClient.Get(fmt.Sprintf("%s/api/v1/info", s.replicateTo))
	if err != nil {
		return fmt.Errorf("error getting server info from replica: %s", err)
	}
	defer resp.Body.Close()

	content, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response from replica: %s", err)
	}
	var info InfoResponse
	err = json.Unmarshal(content, &info)
	if err != nil {
		return fmt.Errorf("error unmarshalling json from replica: %s", err)
	}

	if info.ServerType != "replica" {
		return fmt.Errorf("invalid server type on replica: %s", info.ServerType)
	}

	log.Infof("Local file has %d chunks, replica has %d", s.numChunks(), info.NumChunks)
	if info.NumChunks != s.numChunks() {
		log.Warning("master and replica chunk counts don't match, replica may be stale")
	}

	return nil
}

func (s *Server) numChunks() int {
	s.locker.RLock()
	defer s.locker.RUnlock()
	return len(s.file.Chunks())
}

// persist re-encodes the png file and rewrites it on disk.
// Must be called with the write lock held.
func (s *Server) persist() error {
	if s.fileName == "" {
		return nil
	}
	data := s.file.Encode()
	err := ioutil.WriteFile(s.fileName, data, 0644)
	if err != nil {
		return err
	}
	log.Debugf("wrote %d bytes to %s", len(data), s.fileName)
	return nil
}

// Start creates and configures a http server with all necessary handlers,
// then starts ListenAndServe in background and returns the server
func (s *Server) Start() (*http.Server, error) {

	if s.replicate {
		err := s.checkReplication()
		if err != nil {
			log.Error(err)
			return nil, err
		}
	}

	log.Info("Creating HTTP router")
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/info", s.jsonResponse(s.appInfo))
	r.HandleFunc("/api/v1/chunks", s.jsonResponse(s.listChunks)).Methods("GET")
	r.HandleFunc("/api/v1/message/{type}", s.jsonResponse(s.getMessage)).Methods("GET")

	if s.role == roleMaster {
		r.HandleFunc("/api/v1/message", s.jsonResponse(s.embedMessage)).Methods("POST")
		r.HandleFunc("/api/v1/message/{type}", s.jsonResponse(s.removeMessage)).Methods("DELETE")
	} else {
		r.HandleFunc("/api/v1/message/set", s.jsonResponse(s.setMessage)).Methods("POST")
		r.HandleFunc("/api/v1/message/unset/{type}", s.jsonResponse(s.unsetMessage)).Methods("DELETE")
	}

	srv := &http.Server{
		Addr:    s.bind,
		Handler: r,
	}

	go func() {
		log.Infof("server is starting at %s", s.bind)
		err := srv.ListenAndServe()
		if err != nil {
			return
		}
	}()

	return srv, nil
}

func (s *Server) doReplication(data *IncomingMessage) error {

	jd, err := json.Marshal(data)
	if err != nil {
		return err
	}

	bodyReader := bytes.NewBuffer(jd)
	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v1/message/set", s.replicateTo), bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.replClient.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-ok status code from replica: %d", resp.StatusCode)
	}

	return nil
}

func (s *Server) doReplicationRemove(chunkTypeName string) error {
	url := fmt.Sprintf("%s/api/v1/message/unset/%s", s.replicateTo, chunkTypeName)
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}

	resp, err := s.replClient.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-ok status code from replica: %d", resp.StatusCode)
	}

	return nil
}

type dataHandler func(*http.Request) (interface{}, error)

func (s *Server) jsonResponse(handler dataHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseData, err := handler(r)
		if err != nil {
			common.WriteJSONError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		data, err := json.Marshal(responseData)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal server error / marshalling error"}`))
			return
		}
		w.Write(data)
	}
}
