package agentbay

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/gammazero/toposort"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// UploadMode 上传模式。
type UploadMode string

const (
	UploadModeFile    UploadMode = "File"
	UploadModeArchive UploadMode = "Archive"
)

// UploadStrategy 上传策略。
type UploadStrategy string

const UploadBeforeResourceRelease UploadStrategy = "UploadBeforeResourceRelease"

// DownloadStrategy 下载策略。
type DownloadStrategy string

const DownloadAsync DownloadStrategy = "DownloadAsync"

// Lifecycle 回收策略中数据的保留时长。
type Lifecycle string

const (
	Lifecycle1Day    Lifecycle = "Lifecycle_1Day"
	Lifecycle3Days   Lifecycle = "Lifecycle_3Days"
	Lifecycle5Days   Lifecycle = "Lifecycle_5Days"
	Lifecycle10Days  Lifecycle = "Lifecycle_10Days"
	Lifecycle15Days  Lifecycle = "Lifecycle_15Days"
	Lifecycle30Days  Lifecycle = "Lifecycle_30Days"
	Lifecycle90Days  Lifecycle = "Lifecycle_90Days"
	Lifecycle180Days Lifecycle = "Lifecycle_180Days"
	Lifecycle360Days Lifecycle = "Lifecycle_360Days"
	LifecycleForever Lifecycle = "Lifecycle_Forever"
)

// UploadPolicy 定义上下文的上传行为。
type UploadPolicy struct {
	AutoUpload     bool           `json:"autoUpload"`
	UploadStrategy UploadStrategy `json:"uploadStrategy" validate:"omitempty,oneof=UploadBeforeResourceRelease"`
	UploadMode     UploadMode     `json:"uploadMode" validate:"omitempty,oneof=File Archive"`
}

// DownloadPolicy 定义上下文的下载行为。
type DownloadPolicy struct {
	AutoDownload     bool             `json:"autoDownload"`
	DownloadStrategy DownloadStrategy `json:"downloadStrategy" validate:"omitempty,oneof=DownloadAsync"`
}

// DeletePolicy 定义删除文件时的同步行为。
type DeletePolicy struct {
	SyncLocalFile bool `json:"syncLocalFile"`
}

// ExtractPolicy 定义压缩包的解压行为。
type ExtractPolicy struct {
	Extract                bool `json:"extract"`
	DeleteSrcFile          bool `json:"deleteSrcFile"`
	ExtractToCurrentFolder bool `json:"extractToCurrentFolder"`
}

// RecyclePolicy 定义数据回收策略。Paths 不支持通配符。
type RecyclePolicy struct {
	Lifecycle Lifecycle `json:"lifecycle" validate:"omitempty,oneof=Lifecycle_1Day Lifecycle_3Days Lifecycle_5Days Lifecycle_10Days Lifecycle_15Days Lifecycle_30Days Lifecycle_90Days Lifecycle_180Days Lifecycle_360Days Lifecycle_Forever"`
	Paths     []string  `json:"paths" validate:"dive,nowildcard"`
}

// WhiteList 是同步白名单项。Path 与 ExcludePaths 不支持通配符。
type WhiteList struct {
	Path         string   `json:"path" validate:"nowildcard"`
	ExcludePaths []string `json:"excludePaths,omitempty" validate:"dive,nowildcard"`
}

// BWList 是同步黑白名单。
type BWList struct {
	WhiteLists []WhiteList `json:"whiteLists,omitempty" validate:"dive"`
}

// MappingPolicy 定义跨平台路径映射。
type MappingPolicy struct {
	Path string `json:"path"`
}

// SyncPolicy 是上下文同步策略，以 camelCase JSON 传给服务端。
type SyncPolicy struct {
	UploadPolicy   *UploadPolicy   `json:"uploadPolicy,omitempty"`
	DownloadPolicy *DownloadPolicy `json:"downloadPolicy,omitempty"`
	DeletePolicy   *DeletePolicy   `json:"deletePolicy,omitempty"`
	ExtractPolicy  *ExtractPolicy  `json:"extractPolicy,omitempty"`
	RecyclePolicy  *RecyclePolicy  `json:"recyclePolicy,omitempty"`
	BWList         *BWList         `json:"bwList,omitempty"`
	MappingPolicy  *MappingPolicy  `json:"mappingPolicy,omitempty"`
}

// NewUploadPolicy 返回默认上传策略。
func NewUploadPolicy() *UploadPolicy {
	return &UploadPolicy{AutoUpload: true, UploadStrategy: UploadBeforeResourceRelease, UploadMode: UploadModeFile}
}

// NewDownloadPolicy 返回默认下载策略。
func NewDownloadPolicy() *DownloadPolicy {
	return &DownloadPolicy{AutoDownload: true, DownloadStrategy: DownloadAsync}
}

// NewDeletePolicy 返回默认删除策略。
func NewDeletePolicy() *DeletePolicy {
	return &DeletePolicy{SyncLocalFile: true}
}

// NewExtractPolicy 返回默认解压策略。
func NewExtractPolicy() *ExtractPolicy {
	return &ExtractPolicy{Extract: true, DeleteSrcFile: true}
}

// NewRecyclePolicy 返回默认回收策略：永久保留，作用于全部路径。
func NewRecyclePolicy() *RecyclePolicy {
	return &RecyclePolicy{Lifecycle: LifecycleForever, Paths: []string{""}}
}

// NewBWList 返回默认黑白名单：同步全部路径。
func NewBWList() *BWList {
	return &BWList{WhiteLists: []WhiteList{{Path: ""}}}
}

// NewSyncPolicy 返回所有子策略均为默认值的同步策略。
func NewSyncPolicy() *SyncPolicy {
	return &SyncPolicy{
		UploadPolicy:   NewUploadPolicy(),
		DownloadPolicy: NewDownloadPolicy(),
		DeletePolicy:   NewDeletePolicy(),
		ExtractPolicy:  NewExtractPolicy(),
		RecyclePolicy:  NewRecyclePolicy(),
		BWList:         NewBWList(),
	}
}

// withDefaults 返回补齐了缺省子策略的副本。
func (p *SyncPolicy) withDefaults() *SyncPolicy {
	if p == nil {
		return NewSyncPolicy()
	}
	out := *p
	if out.UploadPolicy == nil {
		out.UploadPolicy = NewUploadPolicy()
	}
	if out.DownloadPolicy == nil {
		out.DownloadPolicy = NewDownloadPolicy()
	}
	if out.DeletePolicy == nil {
		out.DeletePolicy = NewDeletePolicy()
	}
	if out.ExtractPolicy == nil {
		out.ExtractPolicy = NewExtractPolicy()
	}
	if out.RecyclePolicy == nil {
		out.RecyclePolicy = NewRecyclePolicy()
	}
	if out.BWList == nil {
		out.BWList = NewBWList()
	}
	return &out
}

// Validate 校验同步策略。
func (p *SyncPolicy) Validate() error {
	return defaultValidator.Validate(p)
}

// ContextSync 描述将上下文挂载到会话内某个路径的同步配置。
type ContextSync struct {
	ContextID string      `json:"contextId" validate:"required"`
	Path      string      `json:"path" validate:"required"`
	Policy    *SyncPolicy `json:"policy,omitempty"`
}

// NewContextSync 创建上下文同步配置。policy 为 nil 时使用默认策略。
func NewContextSync(contextID, path string, policy *SyncPolicy) (*ContextSync, error) {
	cs := &ContextSync{ContextID: contextID, Path: path, Policy: policy}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return cs, nil
}

// WithPolicy 设置同步策略并返回自身，便于链式调用。
func (cs *ContextSync) WithPolicy(policy *SyncPolicy) *ContextSync {
	cs.Policy = policy
	return cs
}

// Validate 校验同步配置及其策略。
func (cs *ContextSync) Validate() error {
	if cs == nil {
		return invalidParameter("context sync cannot be nil")
	}
	return defaultValidator.Validate(cs)
}

func (cs *ContextSync) toAPI() (apis.PersistenceData, error) {
	policy, err := json.Marshal(cs.Policy.withDefaults())
	if err != nil {
		return apis.PersistenceData{}, err
	}
	return apis.PersistenceData{ContextID: cs.ContextID, Path: cs.Path, Policy: string(policy)}, nil
}

// isNestedPath 判断 child 是否位于 parent 目录之下。
func isNestedPath(parent, child string) bool {
	parent = strings.TrimSuffix(path.Clean(parent), "/")
	child = path.Clean(child)
	return parent != child && strings.HasPrefix(child, parent+"/")
}

// persistenceDataFromSyncs 校验并编码同步配置，父目录总是排在其子路径之前。
func persistenceDataFromSyncs(syncs []*ContextSync) ([]apis.PersistenceData, error) {
	if len(syncs) == 0 {
		return nil, nil
	}
	edges := make([]toposort.Edge, 0, len(syncs))
	for i, cs := range syncs {
		if err := cs.Validate(); err != nil {
			return nil, err
		}
		edges = append(edges, toposort.Edge{nil, i})
		for j, other := range syncs {
			if i != j && isNestedPath(cs.Path, other.Path) {
				edges = append(edges, toposort.Edge{i, j})
			}
		}
	}
	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, err
	}

	out := make([]apis.PersistenceData, 0, len(syncs))
	for _, idx := range sorted {
		i, ok := idx.(int)
		if !ok {
			continue
		}
		data, err := syncs[i].toAPI()
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
