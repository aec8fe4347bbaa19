// Copyright 2025 Logbase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package menutree

import (
	"sort"

	"github.com/logbase-dev/atsignal/internal/console/model"
)

// Delta 单条待持久化的变更。ParentId / Depth 仅在节点换父时设置。
type Delta struct {
	MenuId   string  `json:"menuId"`
	Order    int     `json:"order"`
	ParentId *string `json:"parentId,omitempty"`
	Depth    *int    `json:"depth,omitempty"`
}

// ReorderSiblings 计算同级拖拽排序的增量。
//
// newIndex 为最终兄弟列表中的插入位置（0 起）。被移动节点取
// order = newIndex+1；其余兄弟按当前 order 稳定排序后，插入点之前的
// 取 i+1，插入点及之后的取 i+2 —— 插入平移，而不是整组重编号。
// 不修改输入。movedId 不存在时返回 nil。
func ReorderSiblings(menus []model.Menu, movedId string, newIndex int) []Delta {
	moved := find(menus, movedId)
	if moved == nil {
		return nil
	}

	siblings := siblingsOf(menus, moved.ParentId, movedId)
	deltas := make([]Delta, 0, len(siblings)+1)
	deltas = append(deltas, Delta{MenuId: movedId, Order: newIndex + 1})
	for i, s := range siblings {
		ord := i + 1
		if i >= newIndex {
			ord = i + 2
		}
		deltas = append(deltas, Delta{MenuId: s.MenuId, Order: ord})
	}
	return deltas
}

// MoveToNewParent 计算跨父级拖拽的增量。
//
// 被移动节点的 depth 重算为 1（挂到根）或新父 depth+1；新父现有子节点
// 按插入平移重排；若新旧父不同，旧父剩余子节点紧凑重编号为 1..N。
// 返回全部增量的并集，不修改输入。movedId 或新父不存在时返回 nil。
func MoveToNewParent(menus []model.Menu, movedId, newParentId string, newIndex int) []Delta {
	moved := find(menus, movedId)
	if moved == nil {
		return nil
	}

	depth := 1
	if newParentId != model.RootParentId {
		parent := find(menus, newParentId)
		if parent == nil {
			return nil
		}
		depth = parent.Depth + 1
	}

	newSiblings := siblingsOf(menus, newParentId, movedId)
	deltas := make([]Delta, 0, len(newSiblings)+1)
	parentId := newParentId
	deltas = append(deltas, Delta{
		MenuId:   movedId,
		Order:    newIndex + 1,
		ParentId: &parentId,
		Depth:    &depth,
	})
	for i, s := range newSiblings {
		ord := i + 1
		if i >= newIndex {
			ord = i + 2
		}
		deltas = append(deltas, Delta{MenuId: s.MenuId, Order: ord})
	}

	// 旧父剩余子节点紧凑化；被移动节点已经离开，无需平移逻辑
	if moved.ParentId != newParentId {
		remaining := siblingsOf(menus, moved.ParentId, movedId)
		for i, s := range remaining {
			deltas = append(deltas, Delta{MenuId: s.MenuId, Order: i + 1})
		}
	}
	return deltas
}

func find(menus []model.Menu, menuId string) *model.Menu {
	for i := range menus {
		if menus[i].MenuId == menuId {
			return &menus[i]
		}
	}
	return nil
}

// siblingsOf 返回 parentId 下除 excludeId 外的子节点，按当前 order 稳定排序
func siblingsOf(menus []model.Menu, parentId, excludeId string) []model.Menu {
	var group []model.Menu
	for i := range menus {
		if menus[i].ParentId == parentId && menus[i].MenuId != excludeId {
			group = append(group, menus[i])
		}
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Order < group[j].Order
	})
	return group
}
