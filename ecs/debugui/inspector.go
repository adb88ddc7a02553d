package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spritewalk/ecs"
)

// Inspector is a window showing, and allowing edits to, every component of
// one entity.
type Inspector struct {
	Title  string
	Target *ecs.EntityRef
}

func (in *Inspector) Render(storage *ecs.Storage) {
	defer imgui.End()
	if !imgui.BeginV(in.Title, nil, imgui.WindowFlagsNone) {
		return
	}

	id, ok := storage.ResolveEntityRef(in.Target)
	if !ok {
		imgui.Text("No entity")
		return
	}
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d has no archetype", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, t := range archetype.Types() {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(t.String()) {
			renderStruct(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

func renderStruct(v reflect.Value) {
	for _, f := range Fields(v.Type()) {
		renderField(f, v.Field(f.Index))
	}
}

func renderField(f Field, v reflect.Value) {
	label := "##" + f.Name

	switch f.Kind {
	case KindInt:
		n := int32(v.Int())
		fieldLabel(f.Name)
		if imgui.InputInt(label, &n) {
			setField(v, int64(n))
		}
	case KindUint:
		n := int32(v.Uint())
		fieldLabel(f.Name)
		if imgui.InputInt(label, &n) {
			setField(v, int64(n))
		}
	case KindFloat:
		x := float32(v.Float())
		fieldLabel(f.Name)
		if imgui.InputFloat(label, &x) {
			setField(v, float64(x))
		}
	case KindBool:
		b := v.Bool()
		if imgui.Checkbox(f.Name, &b) {
			setField(v, b)
		}
	case KindString:
		s := v.String()
		fieldLabel(f.Name)
		if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) {
			setField(v, s)
		}
	case KindStruct:
		if imgui.TreeNodeStr(f.Name) {
			renderStruct(v)
			imgui.TreePop()
		}
	default:
		imgui.Text(fmt.Sprintf("%s: %v", f.Name, v))
	}
}

func fieldLabel(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
