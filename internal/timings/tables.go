package timings

// VIC, DMT and Established Timings I/II tables. Fields follow the mode struct order.

var vicModes1 = [...]mode{
	{640, 480, 4, 3, 25175, 0, false, 16, 96, 48, false, 10, 2, 33, false, 0, 0, false},         // VIC 1
	{720, 480, 4, 3, 27000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},          // VIC 2
	{720, 480, 16, 9, 27000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},         // VIC 3
	{1280, 720, 16, 9, 74250, 0, false, 110, 40, 220, true, 5, 5, 20, true, 0, 0, false},        // VIC 4
	{1920, 1080, 16, 9, 74250, 0, true, 88, 44, 148, true, 2, 5, 15, true, 0, 0, false},         // VIC 5
	{1440, 480, 4, 3, 27000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},        // VIC 6
	{1440, 480, 16, 9, 27000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},       // VIC 7
	{1440, 240, 4, 3, 27000, 0, false, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},       // VIC 8
	{1440, 240, 16, 9, 27000, 0, false, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},      // VIC 9
	{2880, 480, 4, 3, 54000, 0, true, 76, 248, 228, false, 4, 3, 15, false, 0, 0, false},        // VIC 10
	{2880, 480, 16, 9, 54000, 0, true, 76, 248, 228, false, 4, 3, 15, false, 0, 0, false},       // VIC 11
	{2880, 240, 4, 3, 54000, 0, false, 76, 248, 228, false, 4, 3, 15, false, 0, 0, false},       // VIC 12
	{2880, 240, 16, 9, 54000, 0, false, 76, 248, 228, false, 4, 3, 15, false, 0, 0, false},      // VIC 13
	{1440, 480, 4, 3, 54000, 0, false, 32, 124, 120, false, 9, 6, 30, false, 0, 0, false},       // VIC 14
	{1440, 480, 16, 9, 54000, 0, false, 32, 124, 120, false, 9, 6, 30, false, 0, 0, false},      // VIC 15
	{1920, 1080, 16, 9, 148500, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},       // VIC 16
	{720, 576, 4, 3, 27000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},          // VIC 17
	{720, 576, 16, 9, 27000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},         // VIC 18
	{1280, 720, 16, 9, 74250, 0, false, 440, 40, 220, true, 5, 5, 20, true, 0, 0, false},        // VIC 19
	{1920, 1080, 16, 9, 74250, 0, true, 528, 44, 148, true, 2, 5, 15, true, 0, 0, false},        // VIC 20
	{1440, 576, 4, 3, 27000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},        // VIC 21
	{1440, 576, 16, 9, 27000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},       // VIC 22
	{1440, 288, 4, 3, 27000, 0, false, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},       // VIC 23
	{1440, 288, 16, 9, 27000, 0, false, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},      // VIC 24
	{2880, 576, 4, 3, 54000, 0, true, 48, 252, 276, false, 2, 3, 19, false, 0, 0, false},        // VIC 25
	{2880, 576, 16, 9, 54000, 0, true, 48, 252, 276, false, 2, 3, 19, false, 0, 0, false},       // VIC 26
	{2880, 288, 4, 3, 54000, 0, false, 48, 252, 276, false, 2, 3, 19, false, 0, 0, false},       // VIC 27
	{2880, 288, 16, 9, 54000, 0, false, 48, 252, 276, false, 2, 3, 19, false, 0, 0, false},      // VIC 28
	{1440, 576, 4, 3, 54000, 0, false, 24, 128, 136, false, 5, 5, 39, false, 0, 0, false},       // VIC 29
	{1440, 576, 16, 9, 54000, 0, false, 24, 128, 136, false, 5, 5, 39, false, 0, 0, false},      // VIC 30
	{1920, 1080, 16, 9, 148500, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 31
	{1920, 1080, 16, 9, 74250, 0, false, 638, 44, 148, true, 4, 5, 36, true, 0, 0, false},       // VIC 32
	{1920, 1080, 16, 9, 74250, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},       // VIC 33
	{1920, 1080, 16, 9, 74250, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},        // VIC 34
	{2880, 480, 4, 3, 108000, 0, false, 64, 248, 240, false, 9, 6, 30, false, 0, 0, false},      // VIC 35
	{2880, 480, 16, 9, 108000, 0, false, 64, 248, 240, false, 9, 6, 30, false, 0, 0, false},     // VIC 36
	{2880, 576, 4, 3, 108000, 0, false, 48, 256, 272, false, 5, 5, 39, false, 0, 0, false},      // VIC 37
	{2880, 576, 16, 9, 108000, 0, false, 48, 256, 272, false, 5, 5, 39, false, 0, 0, false},     // VIC 38
	{1920, 1080, 16, 9, 72000, 0, true, 32, 168, 184, true, 23, 5, 57, false, 0, 0, true},       // VIC 39
	{1920, 1080, 16, 9, 148500, 0, true, 528, 44, 148, true, 2, 5, 15, true, 0, 0, false},       // VIC 40
	{1280, 720, 16, 9, 148500, 0, false, 440, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 41
	{720, 576, 4, 3, 54000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},          // VIC 42
	{720, 576, 16, 9, 54000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},         // VIC 43
	{1440, 576, 4, 3, 54000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},        // VIC 44
	{1440, 576, 16, 9, 54000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},       // VIC 45
	{1920, 1080, 16, 9, 148500, 0, true, 88, 44, 148, true, 2, 5, 15, true, 0, 0, false},        // VIC 46
	{1280, 720, 16, 9, 148500, 0, false, 110, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 47
	{720, 480, 4, 3, 54000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},          // VIC 48
	{720, 480, 16, 9, 54000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},         // VIC 49
	{1440, 480, 4, 3, 54000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},        // VIC 50
	{1440, 480, 16, 9, 54000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},       // VIC 51
	{720, 576, 4, 3, 108000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},         // VIC 52
	{720, 576, 16, 9, 108000, 0, false, 12, 64, 68, false, 5, 5, 39, false, 0, 0, false},        // VIC 53
	{1440, 576, 4, 3, 108000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},       // VIC 54
	{1440, 576, 16, 9, 108000, 0, true, 24, 126, 138, false, 2, 3, 19, false, 0, 0, false},      // VIC 55
	{720, 480, 4, 3, 108000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},         // VIC 56
	{720, 480, 16, 9, 108000, 0, false, 16, 62, 60, false, 9, 6, 30, false, 0, 0, false},        // VIC 57
	{1440, 480, 4, 3, 108000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},       // VIC 58
	{1440, 480, 16, 9, 108000, 0, true, 38, 124, 114, false, 4, 3, 15, false, 0, 0, false},      // VIC 59
	{1280, 720, 16, 9, 59400, 0, false, 1760, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 60
	{1280, 720, 16, 9, 74250, 0, false, 2420, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 61
	{1280, 720, 16, 9, 74250, 0, false, 1760, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 62
	{1920, 1080, 16, 9, 297000, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},       // VIC 63
	{1920, 1080, 16, 9, 297000, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 64
	{1280, 720, 64, 27, 59400, 0, false, 1760, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 65
	{1280, 720, 64, 27, 74250, 0, false, 2420, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 66
	{1280, 720, 64, 27, 74250, 0, false, 1760, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 67
	{1280, 720, 64, 27, 74250, 0, false, 440, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 68
	{1280, 720, 64, 27, 74250, 0, false, 110, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 69
	{1280, 720, 64, 27, 148500, 0, false, 440, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 70
	{1280, 720, 64, 27, 148500, 0, false, 110, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 71
	{1920, 1080, 64, 27, 74250, 0, false, 638, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 72
	{1920, 1080, 64, 27, 74250, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 73
	{1920, 1080, 64, 27, 74250, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},       // VIC 74
	{1920, 1080, 64, 27, 148500, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},     // VIC 75
	{1920, 1080, 64, 27, 148500, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 76
	{1920, 1080, 64, 27, 297000, 0, false, 528, 44, 148, true, 4, 5, 36, true, 0, 0, false},     // VIC 77
	{1920, 1080, 64, 27, 297000, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 78
	{1680, 720, 64, 27, 59400, 0, false, 1360, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 79
	{1680, 720, 64, 27, 59400, 0, false, 1228, 40, 220, true, 5, 5, 20, true, 0, 0, false},      // VIC 80
	{1680, 720, 64, 27, 59400, 0, false, 700, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 81
	{1680, 720, 64, 27, 82500, 0, false, 260, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 82
	{1680, 720, 64, 27, 99000, 0, false, 260, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 83
	{1680, 720, 64, 27, 165000, 0, false, 60, 40, 220, true, 5, 5, 95, true, 0, 0, false},       // VIC 84
	{1680, 720, 64, 27, 198000, 0, false, 60, 40, 220, true, 5, 5, 95, true, 0, 0, false},       // VIC 85
	{2560, 1080, 64, 27, 99000, 0, false, 998, 44, 148, true, 4, 5, 11, true, 0, 0, false},      // VIC 86
	{2560, 1080, 64, 27, 90000, 0, false, 448, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 87
	{2560, 1080, 64, 27, 118800, 0, false, 768, 44, 148, true, 4, 5, 36, true, 0, 0, false},     // VIC 88
	{2560, 1080, 64, 27, 185625, 0, false, 548, 44, 148, true, 4, 5, 36, true, 0, 0, false},     // VIC 89
	{2560, 1080, 64, 27, 198000, 0, false, 248, 44, 148, true, 4, 5, 11, true, 0, 0, false},     // VIC 90
	{2560, 1080, 64, 27, 371250, 0, false, 218, 44, 148, true, 4, 5, 161, true, 0, 0, false},    // VIC 91
	{2560, 1080, 64, 27, 495000, 0, false, 548, 44, 148, true, 4, 5, 161, true, 0, 0, false},    // VIC 92
	{3840, 2160, 16, 9, 297000, 0, false, 1276, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 93
	{3840, 2160, 16, 9, 297000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 94
	{3840, 2160, 16, 9, 297000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},     // VIC 95
	{3840, 2160, 16, 9, 594000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 96
	{3840, 2160, 16, 9, 594000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},     // VIC 97
	{4096, 2160, 256, 135, 297000, 0, false, 1020, 88, 296, true, 8, 10, 72, true, 0, 0, false}, // VIC 98
	{4096, 2160, 256, 135, 297000, 0, false, 968, 88, 128, true, 8, 10, 72, true, 0, 0, false},  // VIC 99
	{4096, 2160, 256, 135, 297000, 0, false, 88, 88, 128, true, 8, 10, 72, true, 0, 0, false},   // VIC 100
	{4096, 2160, 256, 135, 594000, 0, false, 968, 88, 128, true, 8, 10, 72, true, 0, 0, false},  // VIC 101
	{4096, 2160, 256, 135, 594000, 0, false, 88, 88, 128, true, 8, 10, 72, true, 0, 0, false},   // VIC 102
	{3840, 2160, 64, 27, 297000, 0, false, 1276, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 103
	{3840, 2160, 64, 27, 297000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 104
	{3840, 2160, 64, 27, 297000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 105
	{3840, 2160, 64, 27, 594000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 106
	{3840, 2160, 64, 27, 594000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 107
	{1280, 720, 16, 9, 90000, 0, false, 960, 40, 220, true, 5, 5, 20, true, 0, 0, false},        // VIC 108
	{1280, 720, 64, 27, 90000, 0, false, 960, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 109
	{1680, 720, 64, 27, 99000, 0, false, 810, 40, 220, true, 5, 5, 20, true, 0, 0, false},       // VIC 110
	{1920, 1080, 16, 9, 148500, 0, false, 638, 44, 148, true, 4, 5, 36, true, 0, 0, false},      // VIC 111
	{1920, 1080, 64, 27, 148500, 0, false, 638, 44, 148, true, 4, 5, 36, true, 0, 0, false},     // VIC 112
	{2560, 1080, 64, 27, 198000, 0, false, 998, 44, 148, true, 4, 5, 11, true, 0, 0, false},     // VIC 113
	{3840, 2160, 16, 9, 594000, 0, false, 1276, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 114
	{4096, 2160, 256, 135, 594000, 0, false, 1020, 88, 296, true, 8, 10, 72, true, 0, 0, false}, // VIC 115
	{3840, 2160, 64, 27, 594000, 0, false, 1276, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 116
	{3840, 2160, 16, 9, 1188000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 117
	{3840, 2160, 16, 9, 1188000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 118
	{3840, 2160, 64, 27, 1188000, 0, false, 1056, 88, 296, true, 8, 10, 72, true, 0, 0, false},  // VIC 119
	{3840, 2160, 64, 27, 1188000, 0, false, 176, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 120
	{5120, 2160, 64, 27, 396000, 0, false, 1996, 88, 296, true, 8, 10, 22, true, 0, 0, false},   // VIC 121
	{5120, 2160, 64, 27, 396000, 0, false, 1696, 88, 296, true, 8, 10, 22, true, 0, 0, false},   // VIC 122
	{5120, 2160, 64, 27, 396000, 0, false, 664, 88, 128, true, 8, 10, 22, true, 0, 0, false},    // VIC 123
	{5120, 2160, 64, 27, 742500, 0, false, 746, 88, 296, true, 8, 10, 297, true, 0, 0, false},   // VIC 124
	{5120, 2160, 64, 27, 742500, 0, false, 1096, 88, 296, true, 8, 10, 72, true, 0, 0, false},   // VIC 125
	{5120, 2160, 64, 27, 742500, 0, false, 164, 88, 128, true, 8, 10, 72, true, 0, 0, false},    // VIC 126
	{5120, 2160, 64, 27, 1485000, 0, false, 1096, 88, 296, true, 8, 10, 72, true, 0, 0, false},  // VIC 127
}

var vicModes2 = [...]mode{
	{5120, 2160, 64, 27, 1485000, 0, false, 164, 88, 128, true, 8, 10, 72, true, 0, 0, false},      // VIC 193
	{7680, 4320, 16, 9, 1188000, 0, false, 2552, 176, 592, true, 16, 20, 144, true, 0, 0, false},   // VIC 194
	{7680, 4320, 16, 9, 1188000, 0, false, 2352, 176, 592, true, 16, 20, 44, true, 0, 0, false},    // VIC 195
	{7680, 4320, 16, 9, 1188000, 0, false, 552, 176, 592, true, 16, 20, 44, true, 0, 0, false},     // VIC 196
	{7680, 4320, 16, 9, 2376000, 0, false, 2552, 176, 592, true, 16, 20, 144, true, 0, 0, false},   // VIC 197
	{7680, 4320, 16, 9, 2376000, 0, false, 2352, 176, 592, true, 16, 20, 44, true, 0, 0, false},    // VIC 198
	{7680, 4320, 16, 9, 2376000, 0, false, 552, 176, 592, true, 16, 20, 44, true, 0, 0, false},     // VIC 199
	{7680, 4320, 16, 9, 4752000, 0, false, 2112, 176, 592, true, 16, 20, 144, true, 0, 0, false},   // VIC 200
	{7680, 4320, 16, 9, 4752000, 0, false, 352, 176, 592, true, 16, 20, 144, true, 0, 0, false},    // VIC 201
	{7680, 4320, 64, 27, 1188000, 0, false, 2552, 176, 592, true, 16, 20, 144, true, 0, 0, false},  // VIC 202
	{7680, 4320, 64, 27, 1188000, 0, false, 2352, 176, 592, true, 16, 20, 44, true, 0, 0, false},   // VIC 203
	{7680, 4320, 64, 27, 1188000, 0, false, 552, 176, 592, true, 16, 20, 44, true, 0, 0, false},    // VIC 204
	{7680, 4320, 64, 27, 2376000, 0, false, 2552, 176, 592, true, 16, 20, 144, true, 0, 0, false},  // VIC 205
	{7680, 4320, 64, 27, 2376000, 0, false, 2352, 176, 592, true, 16, 20, 44, true, 0, 0, false},   // VIC 206
	{7680, 4320, 64, 27, 2376000, 0, false, 552, 176, 592, true, 16, 20, 44, true, 0, 0, false},    // VIC 207
	{7680, 4320, 64, 27, 4752000, 0, false, 2112, 176, 592, true, 16, 20, 144, true, 0, 0, false},  // VIC 208
	{7680, 4320, 64, 27, 4752000, 0, false, 352, 176, 592, true, 16, 20, 144, true, 0, 0, false},   // VIC 209
	{10240, 4320, 64, 27, 1485000, 0, false, 1492, 176, 592, true, 16, 20, 594, true, 0, 0, false}, // VIC 210
	{10240, 4320, 64, 27, 1485000, 0, false, 2492, 176, 592, true, 16, 20, 44, true, 0, 0, false},  // VIC 211
	{10240, 4320, 64, 27, 1485000, 0, false, 288, 176, 296, true, 16, 20, 144, true, 0, 0, false},  // VIC 212
	{10240, 4320, 64, 27, 2970000, 0, false, 1492, 176, 592, true, 16, 20, 594, true, 0, 0, false}, // VIC 213
	{10240, 4320, 64, 27, 2970000, 0, false, 2492, 176, 592, true, 16, 20, 44, true, 0, 0, false},  // VIC 214
	{10240, 4320, 64, 27, 2970000, 0, false, 288, 176, 296, true, 16, 20, 144, true, 0, 0, false},  // VIC 215
	{10240, 4320, 64, 27, 5940000, 0, false, 2192, 176, 592, true, 16, 20, 144, true, 0, 0, false}, // VIC 216
	{10240, 4320, 64, 27, 5940000, 0, false, 288, 176, 296, true, 16, 20, 144, true, 0, 0, false},  // VIC 217
	{4096, 2160, 256, 135, 1188000, 0, false, 800, 88, 296, true, 8, 10, 72, true, 0, 0, false},    // VIC 218
	{4096, 2160, 256, 135, 1188000, 0, false, 88, 88, 128, true, 8, 10, 72, true, 0, 0, false},     // VIC 219
}

var dmtModes = [...]dmtMode{
	{0x01, 0x0000, 0x000000, mode{640, 350, 64, 35, 31500, 0, false, 32, 64, 96, true, 32, 3, 60, false, 0, 0, false}},
	{0x02, 0x3119, 0x000000, mode{640, 400, 16, 10, 31500, 0, false, 32, 64, 96, false, 1, 3, 41, true, 0, 0, false}},
	{0x03, 0x0000, 0x000000, mode{720, 400, 9, 5, 35500, 0, false, 36, 72, 108, false, 1, 3, 42, true, 0, 0, false}},
	{0x04, 0x3140, 0x000000, mode{640, 480, 4, 3, 25175, 0, false, 8, 96, 40, false, 2, 2, 25, false, 8, 8, false}},
	{0x05, 0x314c, 0x000000, mode{640, 480, 4, 3, 31500, 0, false, 16, 40, 120, false, 1, 3, 20, false, 8, 8, false}},
	{0x06, 0x314f, 0x000000, mode{640, 480, 4, 3, 31500, 0, false, 16, 64, 120, false, 1, 3, 16, false, 0, 0, false}},
	{0x07, 0x3159, 0x000000, mode{640, 480, 4, 3, 36000, 0, false, 56, 56, 80, false, 1, 3, 25, false, 0, 0, false}},
	{0x08, 0x0000, 0x000000, mode{800, 600, 4, 3, 36000, 0, false, 24, 72, 128, true, 1, 2, 22, true, 0, 0, false}},
	{0x09, 0x4540, 0x000000, mode{800, 600, 4, 3, 40000, 0, false, 40, 128, 88, true, 1, 4, 23, true, 0, 0, false}},
	{0x0a, 0x454c, 0x000000, mode{800, 600, 4, 3, 50000, 0, false, 56, 120, 64, true, 37, 6, 23, true, 0, 0, false}},
	{0x0b, 0x454f, 0x000000, mode{800, 600, 4, 3, 49500, 0, false, 16, 80, 160, true, 1, 3, 21, true, 0, 0, false}},
	{0x0c, 0x4559, 0x000000, mode{800, 600, 4, 3, 56250, 0, false, 32, 64, 152, true, 1, 3, 27, true, 0, 0, false}},
	{0x0d, 0x0000, 0x000000, mode{800, 600, 4, 3, 73250, 1, false, 48, 32, 80, true, 3, 4, 29, false, 0, 0, false}},
	{0x0e, 0x0000, 0x000000, mode{848, 480, 16, 9, 33750, 0, false, 16, 112, 112, true, 6, 8, 23, true, 0, 0, false}},
	{0x0f, 0x0000, 0x000000, mode{1024, 768, 4, 3, 44900, 0, true, 8, 176, 56, true, 0, 4, 20, true, 0, 0, false}},
	{0x10, 0x6140, 0x000000, mode{1024, 768, 4, 3, 65000, 0, false, 24, 136, 160, false, 3, 6, 29, false, 0, 0, false}},
	{0x11, 0x614c, 0x000000, mode{1024, 768, 4, 3, 75000, 0, false, 24, 136, 144, false, 3, 6, 29, false, 0, 0, false}},
	{0x12, 0x614f, 0x000000, mode{1024, 768, 4, 3, 78750, 0, false, 16, 96, 176, true, 1, 3, 28, true, 0, 0, false}},
	{0x13, 0x6159, 0x000000, mode{1024, 768, 4, 3, 94500, 0, false, 48, 96, 208, true, 1, 3, 36, true, 0, 0, false}},
	{0x14, 0x0000, 0x000000, mode{1024, 768, 4, 3, 115500, 1, false, 48, 32, 80, true, 3, 4, 38, false, 0, 0, false}},
	{0x15, 0x714f, 0x000000, mode{1152, 864, 4, 3, 108000, 0, false, 64, 128, 256, true, 1, 3, 32, true, 0, 0, false}},
	{0x55, 0x81c0, 0x000000, mode{1280, 720, 16, 9, 74250, 0, false, 110, 40, 220, true, 5, 5, 20, true, 0, 0, false}},
	{0x16, 0x0000, 0x7f1c21, mode{1280, 768, 5, 3, 68250, 1, false, 48, 32, 80, true, 3, 7, 12, false, 0, 0, false}},
	{0x17, 0x0000, 0x7f1c28, mode{1280, 768, 5, 3, 79500, 0, false, 64, 128, 192, false, 3, 7, 20, true, 0, 0, false}},
	{0x18, 0x0000, 0x7f1c44, mode{1280, 768, 5, 3, 102250, 0, false, 80, 128, 208, false, 3, 7, 27, true, 0, 0, false}},
	{0x19, 0x0000, 0x7f1c62, mode{1280, 768, 5, 3, 117500, 0, false, 80, 136, 216, false, 3, 7, 31, true, 0, 0, false}},
	{0x1a, 0x0000, 0x000000, mode{1280, 768, 5, 3, 140250, 0, false, 48, 32, 80, true, 3, 7, 35, false, 0, 0, false}},
	{0x1b, 0x0000, 0x8f1821, mode{1280, 800, 16, 10, 71000, 1, false, 48, 32, 80, true, 3, 6, 14, false, 0, 0, false}},
	{0x1c, 0x8100, 0x8f1828, mode{1280, 800, 16, 10, 83500, 0, false, 72, 128, 200, false, 3, 6, 22, true, 0, 0, false}},
	{0x1d, 0x810f, 0x8f1844, mode{1280, 800, 16, 10, 106500, 0, false, 80, 128, 208, false, 3, 6, 29, true, 0, 0, false}},
	{0x1e, 0x8119, 0x8f1862, mode{1280, 800, 16, 10, 122500, 0, false, 80, 136, 216, false, 3, 6, 34, true, 0, 0, false}},
	{0x1f, 0x0000, 0x000000, mode{1280, 800, 16, 10, 146250, 1, false, 48, 32, 80, true, 3, 6, 38, false, 0, 0, false}},
	{0x20, 0x8140, 0x000000, mode{1280, 960, 4, 3, 108000, 0, false, 96, 112, 312, true, 1, 3, 36, true, 0, 0, false}},
	{0x21, 0x8159, 0x000000, mode{1280, 960, 4, 3, 148500, 0, false, 64, 160, 224, true, 1, 3, 47, true, 0, 0, false}},
	{0x22, 0x0000, 0x000000, mode{1280, 960, 4, 3, 175500, 1, false, 48, 32, 80, true, 3, 4, 50, false, 0, 0, false}},
	{0x23, 0x8180, 0x000000, mode{1280, 1024, 5, 4, 108000, 0, false, 48, 112, 248, true, 1, 3, 38, true, 0, 0, false}},
	{0x24, 0x818f, 0x000000, mode{1280, 1024, 5, 4, 135000, 0, false, 16, 144, 248, true, 1, 3, 38, true, 0, 0, false}},
	{0x25, 0x8199, 0x000000, mode{1280, 1024, 5, 4, 157500, 0, false, 64, 160, 224, true, 1, 3, 44, true, 0, 0, false}},
	{0x26, 0x0000, 0x000000, mode{1280, 1024, 5, 4, 187250, 1, false, 48, 32, 80, true, 3, 7, 50, false, 0, 0, false}},
	{0x27, 0x0000, 0x000000, mode{1360, 768, 85, 48, 85500, 0, false, 64, 112, 256, true, 3, 6, 18, true, 0, 0, false}},
	{0x28, 0x0000, 0x000000, mode{1360, 768, 85, 48, 148250, 1, false, 48, 32, 80, true, 3, 5, 37, false, 0, 0, false}},
	{0x51, 0x0000, 0x000000, mode{1366, 768, 85, 48, 85500, 0, false, 70, 143, 213, true, 3, 3, 24, true, 0, 0, false}},
	{0x56, 0x0000, 0x000000, mode{1366, 768, 85, 48, 72000, 1, false, 14, 56, 64, true, 1, 3, 28, true, 0, 0, false}},
	{0x29, 0x0000, 0x0c2021, mode{1400, 1050, 4, 3, 101000, 1, false, 48, 32, 80, true, 3, 4, 23, false, 0, 0, false}},
	{0x2a, 0x9040, 0x0c2028, mode{1400, 1050, 4, 3, 121750, 0, false, 88, 144, 232, false, 3, 4, 32, true, 0, 0, false}},
	{0x2b, 0x904f, 0x0c2044, mode{1400, 1050, 4, 3, 156000, 0, false, 104, 144, 248, false, 3, 4, 42, true, 0, 0, false}},
	{0x2c, 0x9059, 0x0c2062, mode{1400, 1050, 4, 3, 179500, 0, false, 104, 152, 256, false, 3, 4, 48, true, 0, 0, false}},
	{0x2d, 0x0000, 0x000000, mode{1400, 1050, 4, 3, 208000, 1, false, 48, 32, 80, true, 3, 4, 55, false, 0, 0, false}},
	{0x2e, 0x0000, 0xc11821, mode{1440, 900, 16, 10, 88750, 1, false, 48, 32, 80, true, 3, 6, 17, false, 0, 0, false}},
	{0x2f, 0x9500, 0xc11828, mode{1440, 900, 16, 10, 106500, 0, false, 80, 152, 232, false, 3, 6, 25, true, 0, 0, false}},
	{0x30, 0x950f, 0xc11844, mode{1440, 900, 16, 10, 136750, 0, false, 96, 152, 248, false, 3, 6, 33, true, 0, 0, false}},
	{0x31, 0x9519, 0xc11868, mode{1440, 900, 16, 10, 157000, 0, false, 104, 152, 256, false, 3, 6, 39, true, 0, 0, false}},
	{0x32, 0x0000, 0x000000, mode{1440, 900, 16, 10, 182750, 1, false, 48, 32, 80, true, 3, 6, 44, false, 0, 0, false}},
	{0x53, 0xa9c0, 0x000000, mode{1600, 900, 16, 9, 108000, 1, false, 24, 80, 96, true, 1, 3, 96, true, 0, 0, false}},
	{0x33, 0xa940, 0x000000, mode{1600, 1200, 4, 3, 162000, 0, false, 64, 192, 304, true, 1, 3, 46, true, 0, 0, false}},
	{0x34, 0xa945, 0x000000, mode{1600, 1200, 4, 3, 175500, 0, false, 64, 192, 304, true, 1, 3, 46, true, 0, 0, false}},
	{0x35, 0xa94a, 0x000000, mode{1600, 1200, 4, 3, 189000, 0, false, 64, 192, 304, true, 1, 3, 46, true, 0, 0, false}},
	{0x36, 0xa94f, 0x000000, mode{1600, 1200, 4, 3, 202500, 0, false, 64, 192, 304, true, 1, 3, 46, true, 0, 0, false}},
	{0x37, 0xa959, 0x000000, mode{1600, 1200, 4, 3, 229500, 0, false, 64, 192, 304, true, 1, 3, 46, true, 0, 0, false}},
	{0x38, 0x0000, 0x000000, mode{1600, 1200, 4, 3, 268250, 1, false, 48, 32, 80, true, 3, 4, 64, false, 0, 0, false}},
	{0x39, 0x0000, 0x0c2821, mode{1680, 1050, 16, 10, 119000, 1, false, 48, 32, 80, true, 3, 6, 21, false, 0, 0, false}},
	{0x3a, 0xb300, 0x0c2828, mode{1680, 1050, 16, 10, 146250, 0, false, 104, 176, 280, false, 3, 6, 30, true, 0, 0, false}},
	{0x3b, 0xb30f, 0x0c2844, mode{1680, 1050, 16, 10, 187000, 0, false, 120, 176, 296, false, 3, 6, 40, true, 0, 0, false}},
	{0x3c, 0xb319, 0x0c2868, mode{1680, 1050, 16, 10, 214750, 0, false, 128, 176, 304, false, 3, 6, 46, true, 0, 0, false}},
	{0x3d, 0x0000, 0x000000, mode{1680, 1050, 16, 10, 245500, 1, false, 48, 32, 80, true, 3, 6, 53, false, 0, 0, false}},
	{0x3e, 0xc140, 0x000000, mode{1792, 1344, 4, 3, 204750, 0, false, 128, 200, 328, false, 1, 3, 46, true, 0, 0, false}},
	{0x3f, 0xc14f, 0x000000, mode{1792, 1344, 4, 3, 261000, 0, false, 96, 216, 352, false, 1, 3, 69, true, 0, 0, false}},
	{0x40, 0x0000, 0x000000, mode{1792, 1344, 4, 3, 333250, 1, false, 48, 32, 80, true, 3, 4, 72, false, 0, 0, false}},
	{0x41, 0xc940, 0x000000, mode{1856, 1392, 4, 3, 218250, 0, false, 96, 224, 352, false, 1, 3, 43, true, 0, 0, false}},
	{0x42, 0xc94f, 0x000000, mode{1856, 1392, 4, 3, 288000, 0, false, 128, 224, 352, false, 1, 3, 104, true, 0, 0, false}},
	{0x43, 0x0000, 0x000000, mode{1856, 1392, 4, 3, 356500, 1, false, 48, 32, 80, true, 3, 4, 74, false, 0, 0, false}},
	{0x52, 0xd1c0, 0x000000, mode{1920, 1080, 16, 9, 148500, 0, false, 88, 44, 148, true, 4, 5, 36, true, 0, 0, false}},
	{0x44, 0x0000, 0x572821, mode{1920, 1200, 16, 10, 154000, 1, false, 48, 32, 80, true, 3, 6, 26, false, 0, 0, false}},
	{0x45, 0xd100, 0x572828, mode{1920, 1200, 16, 10, 193250, 0, false, 136, 200, 336, false, 3, 6, 36, true, 0, 0, false}},
	{0x46, 0xd10f, 0x572844, mode{1920, 1200, 16, 10, 245250, 0, false, 136, 208, 344, false, 3, 6, 46, true, 0, 0, false}},
	{0x47, 0xd119, 0x572862, mode{1920, 1200, 16, 10, 281250, 0, false, 144, 208, 352, false, 3, 6, 53, true, 0, 0, false}},
	{0x48, 0x0000, 0x000000, mode{1920, 1200, 16, 10, 317000, 1, false, 48, 32, 80, true, 3, 6, 62, false, 0, 0, false}},
	{0x49, 0xd140, 0x000000, mode{1920, 1440, 4, 3, 234000, 0, false, 128, 208, 344, false, 1, 3, 56, true, 0, 0, false}},
	{0x4a, 0xd14f, 0x000000, mode{1920, 1440, 4, 3, 297000, 0, false, 144, 224, 352, false, 1, 3, 56, true, 0, 0, false}},
	{0x4b, 0x0000, 0x000000, mode{1920, 1440, 4, 3, 380500, 1, false, 48, 32, 80, true, 2, 3, 78, false, 0, 0, false}},
	{0x54, 0xe1c0, 0x000000, mode{2048, 1152, 16, 9, 162000, 1, false, 26, 80, 96, true, 1, 3, 44, true, 0, 0, false}},
	{0x4c, 0x0000, 0x1f3821, mode{2560, 1600, 16, 10, 268500, 1, false, 48, 32, 80, true, 3, 6, 37, false, 0, 0, false}},
	{0x4d, 0x0000, 0x1f3828, mode{2560, 1600, 16, 10, 348500, 0, false, 192, 280, 472, false, 3, 6, 49, true, 0, 0, false}},
	{0x4e, 0x0000, 0x1f3844, mode{2560, 1600, 16, 10, 443250, 0, false, 208, 280, 488, false, 3, 6, 63, true, 0, 0, false}},
	{0x4f, 0x0000, 0x1f3862, mode{2560, 1600, 16, 10, 505250, 0, false, 208, 280, 488, false, 3, 6, 73, true, 0, 0, false}},
	{0x50, 0x0000, 0x000000, mode{2560, 1600, 16, 10, 552750, 1, false, 48, 32, 80, true, 3, 6, 85, false, 0, 0, false}},
	{0x57, 0x0000, 0x000000, mode{4096, 2160, 256, 135, 556744, 1, false, 8, 32, 40, true, 48, 8, 6, false, 0, 0, false}},
	{0x58, 0x0000, 0x000000, mode{4096, 2160, 256, 135, 556188, 1, false, 8, 32, 40, true, 48, 8, 6, false, 0, 0, false}},
}

var establishedModes12 = [...]establishedMode{
	{0, mode{720, 400, 9, 5, 28320, 0, false, 18, 108, 54, false, 21, 2, 26, true, 0, 0, false}, "IBM"},
	{0, mode{720, 400, 9, 5, 35500, 0, false, 18, 108, 54, false, 12, 2, 35, true, 0, 0, false}, "IBM"},
	{dmt: 0x04},
	{0, mode{640, 480, 4, 3, 30240, 0, false, 64, 64, 96, false, 3, 3, 39, false, 0, 0, false}, "Apple"},
	{dmt: 0x05},
	{dmt: 0x06},
	{dmt: 0x08},
	{dmt: 0x09},
	{dmt: 0x0a},
	{dmt: 0x0b},
	{0, mode{832, 624, 4, 3, 57284, 0, false, 32, 64, 224, false, 1, 3, 39, false, 0, 0, false}, "Apple"},
	{dmt: 0x0f},
	{dmt: 0x10},
	{dmt: 0x11},
	{dmt: 0x12},
	{dmt: 0x24},
	{0, mode{1152, 870, 192, 145, 100000, 0, false, 48, 128, 128, true, 3, 3, 39, true, 0, 0, false}, "Apple"},
}
