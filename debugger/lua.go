package debugger

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/riva128/logger"
)

// runLua runs the named Lua file with the adapter functions installed as
// globals:
//
//	inb(port), inw(port)           read from the legacy ports
//	outb(port, v), outw(port, v)   write to the legacy ports
//	peek(offset [, width])         read from the MMIO BAR
//	poke(offset, v [, width])      write to the MMIO BAR
//	reset()                        reset the adapter
//	lines()                        the state of SCL and SDA as two booleans
//	log(s)                         add an entry to the log
func (m *debugger) runLua(filename string) error {
	L := lua.NewState()
	defer L.Close()
	m.installLua(L)
	return L.DoFile(filename)
}

func (m *debugger) installLua(L *lua.LState) {
	L.SetGlobal("inb", L.NewFunction(m.luaIn(1)))
	L.SetGlobal("inw", L.NewFunction(m.luaIn(2)))
	L.SetGlobal("outb", L.NewFunction(m.luaOut(1)))
	L.SetGlobal("outw", L.NewFunction(m.luaOut(2)))
	L.SetGlobal("peek", L.NewFunction(m.luaPeek))
	L.SetGlobal("poke", L.NewFunction(m.luaPoke))
	L.SetGlobal("reset", L.NewFunction(m.luaReset))
	L.SetGlobal("lines", L.NewFunction(m.luaLines))
	L.SetGlobal("log", L.NewFunction(m.luaLog))
}

func (m *debugger) luaIn(width int) lua.LGFunction {
	return func(L *lua.LState) int {
		port := L.CheckInt(1)
		v, err := m.adapter.In(uint16(port), width)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LNumber(v))
		return 1
	}
}

func (m *debugger) luaOut(width int) lua.LGFunction {
	return func(L *lua.LState) int {
		port := L.CheckInt(1)
		v := L.CheckInt(2)
		err := m.adapter.Out(uint16(port), width, mask(uint64(v), width))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		m.reportWatches()
		return 0
	}
}

func (m *debugger) luaPeek(L *lua.LState) int {
	offset := L.CheckInt(1)
	width := L.OptInt(2, 1)
	v, err := m.adapter.Peek(uint64(offset), width)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (m *debugger) luaPoke(L *lua.LState) int {
	offset := L.CheckInt(1)
	v := L.CheckInt(2)
	width := L.OptInt(3, 1)
	err := m.adapter.Poke(uint64(offset), width, mask(uint64(v), width))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	m.reportWatches()
	return 0
}

func (m *debugger) luaReset(L *lua.LState) int {
	m.adapter.Reset()
	m.reportWatches()
	return 0
}

func (m *debugger) luaLines(L *lua.LState) int {
	L.Push(lua.LBool(m.adapter.RIVA.I2C.SCL))
	L.Push(lua.LBool(m.adapter.RIVA.I2C.SDA))
	return 2
}

func (m *debugger) luaLog(L *lua.LState) int {
	logger.Log(&m.ctx, "lua", L.CheckString(1))
	return 0
}
