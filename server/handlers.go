package server

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rdxdkr/my-PNGme/common"
	"github.com/rdxdkr/my-PNGme/png"
)

// InfoResponse is a json-marked-up structure for info handler
type InfoResponse struct {
	AppName    string `json:"app_name"`
	PngFile    string `json:"png_file"`
	NumChunks  int    `json:"num_chunks"`
	FileSize   int    `json:"file_size"`
	ServerType string `json:"server_type"`
}

// ChunkInfo describes one chunk of the served png file
type ChunkInfo struct {
	Type     string `json:"type"`
	Length   uint32 `json:"length"`
	Crc      uint32 `json:"crc"`
	Critical bool   `json:"critical"`
}

// ChunkListResponse is a json-marked-up structure for the chunk listing
type ChunkListResponse struct {
	Items []ChunkInfo `json:"items"`
}

// MessageResponse carries one decoded message
type MessageResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// IncomingMessage is a json-marked-up structure for incoming messages
type IncomingMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WriteResponse reports the outcome of a mutation
type WriteResponse struct {
	Type      string `json:"type"`
	NumChunks int    `json:"num_chunks"`
}

func (s *Server) appInfo(r *http.Request) (interface{}, error) {
	srvType := "replica"
	if s.role == roleMaster {
		srvType = "master"
	}
	s.locker.RLock()
	defer s.locker.RUnlock()
	return &InfoResponse{
		AppName:    "pngme",
		PngFile:    s.fileName,
		NumChunks:  len(s.file.Chunks()),
		FileSize:   len(s.file.Encode()),
		ServerType: srvType,
	}, nil
}

func (s *Server) listChunks(r *http.Request) (interface{}, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	clr := &ChunkListResponse{Items: make([]ChunkInfo, 0)}
	for _, chunk := range s.file.Chunks() {
		clr.Items = append(clr.Items, ChunkInfo{
			Type:     chunk.Type().String(),
			Length:   chunk.Length(),
			Crc:      chunk.Crc(),
			Critical: chunk.Type().IsCritical(),
		})
	}
	return clr, nil
}

func (s *Server) getMessage(r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	chunkTypeName := vars["type"]

	s.locker.RLock()
	defer s.locker.RUnlock()

	chunk := s.file.ChunkByType(chunkTypeName)
	if chunk == nil {
		return nil, common.NewHTTPError(http.StatusNotFound,
			"no chunk of type '%s' found", chunkTypeName)
	}

	message, err := chunk.DataString()
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest,
			"chunk '%s' does not hold a text message: %s", chunkTypeName, err)
	}

	return &MessageResponse{Type: chunkTypeName, Message: message}, nil
}

func getIncomingMessage(r *http.Request) (*IncomingMessage, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "application/json" {
		return nil, common.NewHTTPError(http.StatusBadRequest,
			"this handler accepts JSON data only")
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusInternalServerError,
			"error reading request body: %s", err)
	}

	var input IncomingMessage
	err = json.Unmarshal(body, &input)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest,
			"error parsing json data: %s", err)
	}

	if input.Message == "" {
		return nil, common.NewHTTPError(http.StatusBadRequest, "input message is empty")
	}

	return &input, nil
}

// buildChunk converts an incoming message into a chunk, mapping
// codec failures to http errors
func buildChunk(input *IncomingMessage) (*png.Chunk, error) {
	chunkType, err := png.ChunkTypeFromString(input.Type)
	if err != nil {
		return nil, common.NewHTTPError(http.StatusBadRequest,
			"invalid chunk type '%s': %s", input.Type, err)
	}
	return png.NewChunk(chunkType, []byte(input.Message)), nil
}

func (s *Server) embedMessage(r *http.Request) (interface{}, error) {
	input, err := getIncomingMessage(r)
	if err != nil {
		return nil, err
	}

	chunk, err := buildChunk(input)
	if err != nil {
		return nil, err
	}

	// replication is kinda atomic. so if it fails, the local commit
	// must fail as well
	if s.replicate {
		err = s.doReplication(input)
		if err != nil {
			return nil, common.NewHTTPError(http.StatusInternalServerError,
				"replication error: %s", err)
		}
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	s.file.AppendChunk(chunk)
	err = s.persist()
	if err != nil {
		return nil, common.NewHTTPError(http.StatusInternalServerError,
			"error writing png file: %s", err)
	}

	log.Infof("embedded a %d-byte message into chunk %s", chunk.Length(), chunk.Type())
	return &WriteResponse{Type: input.Type, NumChunks: len(s.file.Chunks())}, nil
}

func (s *Server) setMessage(r *http.Request) (interface{}, error) {
	input, err := getIncomingMessage(r)
	if err != nil {
		return nil, err
	}

	chunk, err := buildChunk(input)
	if err != nil {
		return nil, err
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	s.file.AppendChunk(chunk)
	err = s.persist()
	if err != nil {
		return nil, common.NewHTTPError(http.StatusInternalServerError,
			"error writing png file: %s", err)
	}

	return &WriteResponse{Type: input.Type, NumChunks: len(s.file.Chunks())}, nil
}

func (s *Server) removeMessage(r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	chunkTypeName := vars["type"]

	if s.replicate {
		err := s.doReplicationRemove(chunkTypeName)
		if err != nil {
			return nil, common.NewHTTPError(http.StatusInternalServerError,
				"replication error: %s", err)
		}
	}

	return s.removeAndPersist(chunkTypeName)
}

func (s *Server) unsetMessage(r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	return s.removeAndPersist(vars["type"])
}

func (s *Server) removeAndPersist(chunkTypeName string) (interface{}, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	removed, err := s.file.RemoveChunk(chunkTypeName)
	if err != nil {
		if errors.Is(err, png.ErrChunkNotFound) {
			return nil, common.NewHTTPError(http.StatusNotFound,
				"no chunk of type '%s' found", chunkTypeName)
		}
		return nil, common.NewHTTPError(http.StatusInternalServerError,
			"error removing chunk: %s", err)
	}

	err = s.persist()
	if err != nil {
		return nil, common.NewHTTPError(http.StatusInternalServerError,
			"error writing png file: %s", err)
	}

	log.Infof("removed chunk %s", removed.Type())
	return &WriteResponse{Type: chunkTypeName, NumChunks: len(s.file.Chunks())}, nil
}
