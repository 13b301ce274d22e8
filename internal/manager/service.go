package manager

import (
	"context"
	"fmt"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

// The methods below present the manager in API form for the HTTP layer.

func (m *Manager) LoadModel(ctx context.Context, id string) (types.LoadResponse, error) {
	res, err := m.Load(ctx, id)
	if err != nil {
		return types.LoadResponse{}, err
	}
	inst := res.Instance
	resp := types.LoadResponse{
		Status:  string(res.Status),
		ModelID: id,
		Port:    inst.Port,
		URL:     m.backendURL(inst.Port),
		VLLMURL: m.serverURL(inst.Port),
		LoadID:  inst.LoadID,
	}
	switch res.Status {
	case LoadAlreadyLoaded:
		resp.Message = fmt.Sprintf("%s is already loaded on port %d", id, inst.Port)
	default:
		resp.Message = fmt.Sprintf("Loading %s on port %d", id, inst.Port)
	}
	return resp, nil
}

func (m *Manager) UnloadModel(ctx context.Context, id string) (types.UnloadResponse, error) {
	res, err := m.Unload(ctx, id)
	if err != nil {
		return types.UnloadResponse{}, err
	}
	return types.UnloadResponse{
		Status:  "unloaded",
		ModelID: id,
		Port:    res.Instance.Port,
		Message: fmt.Sprintf("Unloaded %s from port %d", id, res.Instance.Port),
	}, nil
}

func (m *Manager) ModelStatus(id string) (types.InstanceStatus, error) {
	inst, err := m.Status(id)
	if err != nil {
		return types.InstanceStatus{}, err
	}
	return m.InstanceStatus(inst), nil
}

func (m *Manager) LoadedModels() types.LoadedResponse {
	snap := m.reg.SnapshotAll()
	out := types.LoadedResponse{LoadedModels: make([]types.InstanceStatus, 0, len(snap)), Count: len(snap)}
	for _, inst := range snap {
		out.LoadedModels = append(out.LoadedModels, m.InstanceStatus(inst))
	}
	return out
}
