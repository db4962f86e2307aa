package specs

import "github.com/wippyai/apigen/stdapi"

// COM describes a small COM API in its own arena: IUnknown, a device that
// creates surfaces, surfaces that return their device, and a factory
// function handing out objects by interface id.
func COM() *stdapi.Module {
	a := stdapi.NewArena()
	in, out := stdapi.In, stdapi.Out

	hresult := a.Alias("HRESULT", stdapi.Long)
	ulong := a.Alias("ULONG", stdapi.ULong)
	uint_ := a.Alias("UINT", stdapi.UInt)
	guid := a.Struct("GUID",
		stdapi.Member{Type: stdapi.ULong, Name: "Data1"},
		stdapi.Member{Type: stdapi.UShort, Name: "Data2"},
		stdapi.Member{Type: stdapi.UShort, Name: "Data3"},
	)
	refiid := a.Alias("REFIID", guid)
	ppv := a.Pointer(a.Pointer(stdapi.Void))
	format := a.Enum("FORMAT", "FORMAT_UNKNOWN", "FORMAT_R8G8B8A8", "FORMAT_B8G8R8A8")
	usage := a.Bitmask(uint_, "USAGE_RENDER_TARGET", "USAGE_SHADER_INPUT", "USAGE_CPU_READ")

	unknown := a.NewInterface("IUnknown", stdapi.InvalidType).
		Method(hresult, "QueryInterface", in(refiid, "riid"), out(ppv, "ppvObj")).
		Method(ulong, "AddRef").
		Method(ulong, "Release").
		Build()

	device := a.NewInterface("IDevice", unknown)
	surface := a.NewInterface("ISurface", unknown)
	desc := a.Struct("SURFACE_DESC",
		stdapi.Member{Type: uint_, Name: "Width"},
		stdapi.Member{Type: uint_, Name: "Height"},
		stdapi.Member{Type: format, Name: "Format"},
		stdapi.Member{Type: usage, Name: "Usage"},
	)

	device.
		Method(hresult, "CreateSurface", in(a.ConstPointer(desc), "pDesc"), out(a.Pointer(a.Pointer(surface.ID())), "ppSurface")).
		Method(hresult, "SetRenderTargets", in(uint_, "NumSurfaces"), in(a.Array(a.Const(a.Pointer(surface.ID())), "NumSurfaces"), "ppSurfaces")).
		ConstMethod(uint_, "GetSurfaceCount").
		Build()
	surface.
		Method(hresult, "GetDevice", out(a.Pointer(a.Pointer(device.ID())), "ppDevice")).
		ConstMethod(stdapi.Void, "GetDesc", out(a.Pointer(desc), "pDesc")).
		Method(hresult, "Present", in(uint_, "SyncInterval")).
		Build()

	create := a.StdFunction(hresult, "CreateDevice", []stdapi.Arg{
		in(uint_, "Flags"),
		in(refiid, "riid"),
		out(ppv, "ppDevice"),
	})

	return stdapi.NewModule(a, "com").
		AddHeaders("#include <objbase.h>", `#include "device.h"`).
		AddFunctions(create).
		AddInterfaces(unknown, device.ID(), surface.ID())
}
