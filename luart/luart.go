// Package luart embeds the Lua source of the runtime support library the
// lowered output calls into. The build pipeline writes it once per place
// the emitted code resolves it from.
package luart

import "io"

// Source returns the runtime support library as Lua source text.
func Source() string {
	return runtime
}

// Write writes the runtime support library to w.
func Write(w io.Writer) (int, error) {
	return w.Write([]byte(runtime))
}

const runtime = `local TS = {};

function TS.array_push(list, ...)
	local args = { ... };
	for i = 1, #args do
		list[#list + 1] = args[i];
	end;
	return #list;
end;

function TS.array_pop(list)
	local n = #list;
	local value = list[n];
	list[n] = nil;
	return value;
end;

function TS.array_map(list, callback)
	local result = {};
	for i = 1, #list do
		result[i] = callback(list[i], i - 1, list);
	end;
	return result;
end;

function TS.array_filter(list, callback)
	local result = {};
	for i = 1, #list do
		if callback(list[i], i - 1, list) then
			result[#result + 1] = list[i];
		end;
	end;
	return result;
end;

function TS.array_forEach(list, callback)
	for i = 1, #list do
		callback(list[i], i - 1, list);
	end;
end;

function TS.array_indexOf(list, value)
	for i = 1, #list do
		if list[i] == value then
			return i - 1;
		end;
	end;
	return -1;
end;

function TS.array_join(list, separator)
	if separator == nil then
		separator = ",";
	end;
	return table.concat(list, separator);
end;

function TS.array_slice(list, startIndex, endIndex)
	local n = #list;
	if startIndex == nil then startIndex = 0; end;
	if endIndex == nil then endIndex = n; end;
	if startIndex < 0 then startIndex = n + startIndex; end;
	if endIndex < 0 then endIndex = n + endIndex; end;
	local result = {};
	for i = startIndex + 1, endIndex do
		result[#result + 1] = list[i];
	end;
	return result;
end;

function TS.string_split(str, separator)
	local result = {};
	if separator == nil or separator == "" then
		for i = 1, #str do
			result[i] = string.sub(str, i, i);
		end;
		return result;
	end;
	local position = 1;
	while true do
		local found = string.find(str, separator, position, true);
		if found == nil then
			result[#result + 1] = string.sub(str, position);
			return result;
		end;
		result[#result + 1] = string.sub(str, position, found - 1);
		position = found + #separator;
	end;
end;

function TS.string_trim(str)
	return (string.gsub(str, "^%s*(.-)%s*$", "%1"));
end;

function TS.string_startsWith(str, prefix)
	return string.sub(str, 1, #prefix) == prefix;
end;

function TS.string_endsWith(str, suffix)
	return suffix == "" or string.sub(str, -#suffix) == suffix;
end;

function TS.string_includes(str, searched)
	return string.find(str, searched, 1, true) ~= nil;
end;

function TS.map_get(map, key)
	return map[key];
end;

function TS.map_set(map, key, value)
	map[key] = value;
	return map;
end;

function TS.map_has(map, key)
	return map[key] ~= nil;
end;

function TS.map_delete(map, key)
	local had = map[key] ~= nil;
	map[key] = nil;
	return had;
end;

function TS.map_size(map)
	local count = 0;
	for _ in pairs(map) do
		count = count + 1;
	end;
	return count;
end;

function TS.map_forEach(map, callback)
	for key, value in pairs(map) do
		callback(value, key, map);
	end;
end;

function TS.set_add(set, value)
	set[value] = true;
	return set;
end;

function TS.set_has(set, value)
	return set[value] == true;
end;

function TS.set_delete(set, value)
	local had = set[value] == true;
	set[value] = nil;
	return had;
end;

function TS.set_forEach(set, callback)
	for value in pairs(set) do
		callback(value, value, set);
	end;
end;

function TS.Object_keys(object)
	local result = {};
	for key in pairs(object) do
		result[#result + 1] = key;
	end;
	return result;
end;

function TS.Object_values(object)
	local result = {};
	for _, value in pairs(object) do
		result[#result + 1] = value;
	end;
	return result;
end;

function TS.Object_entries(object)
	local result = {};
	for key, value in pairs(object) do
		result[#result + 1] = { key, value };
	end;
	return result;
end;

function TS.Object_assign(target, ...)
	local sources = { ... };
	for i = 1, #sources do
		for key, value in pairs(sources[i]) do
			target[key] = value;
		end;
	end;
	return target;
end;

return TS;
`
