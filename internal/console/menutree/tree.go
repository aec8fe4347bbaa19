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

// Package menutree 纯内存的菜单树模型：扁平记录与树结构的互转，
// 以及拖拽排序 / 换父的增量计算。不做任何 I/O。
package menutree

import (
	"sort"

	"github.com/logbase-dev/atsignal/internal/console/model"
)

// Node 物化后的树节点
type Node struct {
	model.Menu
	Children []*Node `json:"children"`
}

// BuildTree 将扁平菜单列表物化为森林。
//
// 分组规则：parent_id 为空、或父节点不在列表中的节点作为根（后者使函数
// 对上游已过滤掉父节点的列表保持健壮）。每组按 order 升序稳定排序，
// 相同 order 保持输入顺序。构成环的记录从任何根都不可达，会被直接丢弃
// 而不是死循环。
func BuildTree(menus []model.Menu) []*Node {
	present := make(map[string]bool, len(menus))
	for i := range menus {
		present[menus[i].MenuId] = true
	}

	// 按 parent_id 分组，保持输入顺序
	children := make(map[string][]*Node, len(menus))
	var roots []*Node
	for i := range menus {
		n := &Node{Menu: menus[i], Children: []*Node{}}
		if n.ParentId == model.RootParentId || !present[n.ParentId] {
			roots = append(roots, n)
			continue
		}
		children[n.ParentId] = append(children[n.ParentId], n)
	}

	sortSiblings(roots)
	var attach func(n *Node)
	attach = func(n *Node) {
		group := children[n.MenuId]
		sortSiblings(group)
		n.Children = group
		for _, c := range group {
			attach(c)
		}
	}
	for _, r := range roots {
		attach(r)
	}
	return roots
}

// Flatten 先序遍历森林，丢弃 children，其余字段原样保留。
func Flatten(forest []*Node) []model.Menu {
	var out []model.Menu
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.Menu)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range forest {
		walk(r)
	}
	return out
}

// Descendants 返回 menuId 的全部后代 id 集合（不含自身）。
// 由调用方在落库前做环校验（canDrop）时使用。
func Descendants(menus []model.Menu, menuId string) map[string]bool {
	children := make(map[string][]string, len(menus))
	for i := range menus {
		children[menus[i].ParentId] = append(children[menus[i].ParentId], menus[i].MenuId)
	}
	set := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		for _, c := range children[id] {
			if set[c] {
				continue // 数据损坏形成的环，到此为止
			}
			set[c] = true
			walk(c)
		}
	}
	walk(menuId)
	return set
}

func sortSiblings(group []*Node) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Order < group[j].Order
	})
}
