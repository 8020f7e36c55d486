package gekko

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

type AssetId string

// AssetServer owns GPU materials. Texture loads started through it are
// uploaded by a PreRender system once their fetch completes.
type AssetServer struct {
	gl        gpu.Context
	materials map[AssetId]*gpu.Material
	order     []AssetId
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	gs, ok := Resource[GpuState](app)
	if !ok {
		panic("AssetServerModule requires GpuModule to be installed first")
	}
	cmd.AddResources(newAssetServer(gs.Ctx))
	app.UseSystem(
		System(assetTextureSystem).
			InStage(PreRender),
	)
}

func newAssetServer(gl gpu.Context) *AssetServer {
	return &AssetServer{
		gl:        gl,
		materials: make(map[AssetId]*gpu.Material),
	}
}

func (server *AssetServer) CreateMaterial(desc gpu.MaterialDescriptor) (AssetId, error) {
	mat, err := gpu.NewMaterial(server.gl, desc)
	if err != nil {
		return "", err
	}
	id := makeAssetId()
	server.materials[id] = mat
	server.order = append(server.order, id)
	return id, nil
}

func (server *AssetServer) Material(id AssetId) (*gpu.Material, bool) {
	mat, ok := server.materials[id]
	return mat, ok
}

func (server *AssetServer) LoadTexture(ctx context.Context, id AssetId, sampler, source string) (*gpu.TextureLoad, error) {
	mat, ok := server.materials[id]
	if !ok {
		return nil, fmt.Errorf("material %s not found", id)
	}
	return mat.LoadTexture(ctx, sampler, source), nil
}

func (server *AssetServer) ReleaseMaterial(id AssetId) {
	mat, ok := server.materials[id]
	if !ok {
		return
	}
	mat.Release()
	delete(server.materials, id)
	for i, other := range server.order {
		if other == id {
			server.order = append(server.order[:i], server.order[i+1:]...)
			break
		}
	}
}

func (server *AssetServer) ReleaseAll() {
	for _, id := range server.order {
		server.materials[id].Release()
	}
	clear(server.materials)
	server.order = nil
}

func assetTextureSystem(server *AssetServer, log Logger) {
	for _, id := range server.order {
		if err := server.materials[id].ApplyTextures(); err != nil {
			log.Warnf("material %s: %v", id, err)
		}
	}
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
